package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/docuchat/docuchat/internal/core/domain"
	"github.com/docuchat/docuchat/internal/core/ports/driven"
	"github.com/docuchat/docuchat/internal/core/ports/driving"
	"github.com/docuchat/docuchat/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// Upload-time ingestion retry policy. Only transient failures are
// retried; malformed documents fail immediately.
const (
	uploadRetryBase = 500 * time.Millisecond
	uploadRetryMax  = 2
)

// DocumentService manages the document lifecycle. Upload registers the
// record and runs ingestion; all later pipeline access is by id.
type DocumentService struct {
	docStore driven.DocumentStore
	ingest   driving.IngestService
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore, ingest driving.IngestService) *DocumentService {
	return &DocumentService{
		docStore: docStore,
		ingest:   ingest,
	}
}

// Upload registers a document and ingests it. Transient ingestion
// failures (upstream timeouts and errors) are retried with exponential
// backoff; on final failure the record is kept so a later chat turn or
// explicit re-ingest can recover it.
func (s *DocumentService) Upload(ctx context.Context, ownerID, name, filePath string) (*domain.Document, error) {
	name = strings.TrimSpace(name)
	filePath = strings.TrimSpace(filePath)
	if name == "" || filePath == "" {
		return nil, fmt.Errorf("%w: document name and file path are required", domain.ErrInvalidInput)
	}

	now := time.Now()
	doc := &domain.Document{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		FilePath:  filePath,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	logger.Info("Registered document %s (%s)", doc.ID, doc.Name)

	backoff := retry.WithMaxRetries(uploadRetryMax, retry.NewExponential(uploadRetryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, ingestErr := s.ingest.Ingest(ctx, doc.ID)
		if ingestErr == nil {
			return nil
		}
		if domain.KindForError(ingestErr).Retryable() {
			logger.Warn("Ingestion of %s failed, will retry: %v", doc.ID, ingestErr)
			return retry.RetryableError(ingestErr)
		}
		return ingestErr
	})
	if err != nil {
		return nil, fmt.Errorf("ingest document %s: %w", doc.ID, err)
	}

	return doc, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, id)
}

// List returns a user's documents, newest first.
func (s *DocumentService) List(ctx context.Context, ownerID string) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx, ownerID)
}

// Rename updates the display name.
func (s *DocumentService) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: document name is required", domain.ErrInvalidInput)
	}
	return s.docStore.RenameDocument(ctx, id, name)
}

// Delete removes a document and its chunks.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.docStore.DeleteDocument(ctx, id)
}
