// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Extractor: Extracts plain text from one document format
//   - ExtractorRegistry: Selects an extractor for detected media types
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Generates grounded answers
//   - VectorStore: Persists chunks and answers similarity queries
//   - DocumentStore: Document metadata persistence
//   - Fetcher: Retrieves raw document bytes from a URL
//
// # Optional Interfaces
//
//   - ChatStore: Conversation/message persistence. When nil, chat turns
//     are answered but not recorded.
//   - PromptStore: Overrides the built-in prompt templates.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
