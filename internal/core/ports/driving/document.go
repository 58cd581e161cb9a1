package driving

import (
	"context"

	"github.com/docuchat/docuchat/internal/core/domain"
)

// DocumentService manages the document lifecycle around the pipeline.
type DocumentService interface {
	// Upload registers a document and runs ingestion for it.
	Upload(ctx context.Context, ownerID, name, filePath string) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns a user's documents, newest first.
	List(ctx context.Context, ownerID string) ([]domain.Document, error)

	// Rename updates the display name, the only permitted mutation.
	Rename(ctx context.Context, id, name string) error

	// Delete removes a document and cascades its chunks.
	Delete(ctx context.Context, id string) error
}
