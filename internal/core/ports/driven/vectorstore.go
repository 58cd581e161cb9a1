package driven

import (
	"context"

	"github.com/docuchat/docuchat/internal/core/domain"
)

// DefaultTopK is the number of chunks a similarity query returns when
// the caller does not specify k.
const DefaultTopK = 10

// VectorStore persists chunk embeddings and answers nearest-neighbour
// queries scoped to one document.
//
// The store embeds query text itself, with the same model used at write
// time, so the similarity metric is consistent on both paths.
type VectorStore interface {
	// Upsert replaces the chunk set for a document. Re-ingesting the
	// same document id replaces rather than duplicates its chunks, and
	// the replacement is atomic: a failure leaves the previous set intact.
	Upsert(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// Query returns the k chunks of the given document most similar to
	// the query text, ordered by descending similarity with a
	// deterministic tie-break. k <= 0 uses DefaultTopK.
	// A query against one document never returns another document's chunks.
	Query(ctx context.Context, documentID string, query string, k int) ([]domain.ScoredChunk, error)

	// Count returns the number of chunks stored for a document.
	Count(ctx context.Context, documentID string) (int, error)
}
