package driven

import "context"

// TaskType hints the embedding provider about how a vector will be used.
// Providers that do not distinguish task types may ignore it, but the
// same model must serve both write-time and query-time embedding so the
// similarity metric stays consistent.
type TaskType string

const (
	// TaskDocument marks vectors stored at ingestion time.
	TaskDocument TaskType = "RETRIEVAL_DOCUMENT"

	// TaskQuery marks vectors computed for a similarity query.
	TaskQuery TaskType = "RETRIEVAL_QUERY"
)

// EmbeddingService generates vector embeddings from text.
//
// Implementations may include:
//   - Google Generative Language API (text-embedding-004)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for a single text.
	Embed(ctx context.Context, text string, task TaskType) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, preserving
	// order and cardinality: len(result) == len(texts). The whole batch
	// fails on any error; no partial results are returned.
	EmbedBatch(ctx context.Context, texts []string, task TaskType) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}
