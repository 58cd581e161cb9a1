// Package vector implements similarity search over stored chunk
// embeddings. The store delegates persistence to a DocumentStore and
// embeds query text with the same model used at ingestion.
package vector

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/docuchat/docuchat/internal/core/domain"
	"github.com/docuchat/docuchat/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store answers nearest-neighbour queries with a brute-force cosine
// scan over one document's chunks. Retrieval is always scoped to a
// single document, so the scan is bounded by document size and never
// touches another document's vectors.
type Store struct {
	docs     driven.DocumentStore
	embedder driven.EmbeddingService
}

// NewStore creates a vector store over the given document store.
func NewStore(docs driven.DocumentStore, embedder driven.EmbeddingService) *Store {
	return &Store{
		docs:     docs,
		embedder: embedder,
	}
}

// Upsert replaces the chunk set for a document.
func (s *Store) Upsert(ctx context.Context, documentID string, chunks []domain.Chunk) error {
	for _, chunk := range chunks {
		if len(chunk.Embedding) != s.embedder.Dimensions() {
			return fmt.Errorf("%w: chunk %s has %d dimensions, want %d",
				domain.ErrInvalidInput, chunk.ID, len(chunk.Embedding), s.embedder.Dimensions())
		}
	}
	return s.docs.ReplaceChunks(ctx, documentID, chunks)
}

// Query returns the k most similar chunks of the document, ordered by
// descending cosine similarity. Ties break on ascending chunk index so
// results are deterministic.
func (s *Store) Query(ctx context.Context, documentID string, query string, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		k = driven.DefaultTopK
	}

	queryVec, err := s.embedder.Embed(ctx, query, driven.TaskQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	chunks, err := s.docs.GetChunks(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}

	scored := make([]domain.ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		scored = append(scored, domain.ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(queryVec, chunk.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Chunk.Index < scored[j].Chunk.Index
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// Count returns the number of chunks stored for a document.
func (s *Store) Count(ctx context.Context, documentID string) (int, error) {
	return s.docs.CountChunks(ctx, documentID)
}

// cosineSimilarity computes the cosine of the angle between two
// vectors. Mismatched or zero-length vectors score zero rather than
// erroring so one bad row cannot fail a whole query.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
