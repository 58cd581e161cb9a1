// Package domain defines the core business entities for docuchat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded document with metadata
//   - Chunk: The retrieval unit of a document's extracted text
//   - Conversation / Message: A chat session about a document
//   - ChatResult: The structured outcome of one chat turn
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
