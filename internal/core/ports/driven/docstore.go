package driven

import (
	"context"

	"github.com/docuchat/docuchat/internal/core/domain"
)

// DocumentStore persists document metadata and chunk rows.
// Backed by SQLite.
type DocumentStore interface {
	// SaveDocument stores or updates a document record.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrDocumentNotFound when absent.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns the documents owned by a user,
	// newest first.
	ListDocuments(ctx context.Context, ownerID string) ([]domain.Document, error)

	// RenameDocument updates the display name, the only permitted
	// mutation after upload.
	RenameDocument(ctx context.Context, id, name string) error

	// DeleteDocument removes a document; its chunks cascade.
	DeleteDocument(ctx context.Context, id string) error

	// ReplaceChunks atomically swaps the chunk set for a document:
	// delete-then-insert in a single transaction.
	ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// GetChunks returns a document's chunks ordered by index.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// CountChunks returns the number of chunks stored for a document.
	CountChunks(ctx context.Context, documentID string) (int, error)
}
