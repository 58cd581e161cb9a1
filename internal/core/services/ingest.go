package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/docuchat/docuchat/internal/chunker"
	"github.com/docuchat/docuchat/internal/core/domain"
	"github.com/docuchat/docuchat/internal/core/ports/driven"
	"github.com/docuchat/docuchat/internal/core/ports/driving"
	"github.com/docuchat/docuchat/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the write-path pipeline:
// fetch -> extract -> chunk -> embed -> upsert.
//
// Ingestion of one document id is serialised through a per-document
// lock table; concurrent callers queue rather than race. The pipeline
// is idempotent: re-ingesting replaces the previous chunk set.
type IngestService struct {
	docStore driven.DocumentStore
	fetcher  driven.Fetcher
	registry driven.ExtractorRegistry
	chunker  *chunker.Chunker
	embedder driven.EmbeddingService
	vectors  driven.VectorStore

	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	docStore driven.DocumentStore,
	fetcher driven.Fetcher,
	registry driven.ExtractorRegistry,
	chk *chunker.Chunker,
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
) *IngestService {
	if chk == nil {
		chk = chunker.New()
	}
	return &IngestService{
		docStore: docStore,
		fetcher:  fetcher,
		registry: registry,
		chunker:  chk,
		embedder: embedder,
		vectors:  vectors,
		locks:    make(map[string]chan struct{}),
	}
}

// Ingest processes the document's bytes into an embedded chunk set.
func (s *IngestService) Ingest(ctx context.Context, documentID string) (driving.IngestStats, error) {
	stats := driving.IngestStats{DocumentID: documentID}

	if err := s.lock(ctx, documentID); err != nil {
		return stats, err
	}
	defer s.unlock(documentID)

	logger.Section("Document Ingestion")
	logger.Debug("Document: %s", documentID)

	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return stats, fmt.Errorf("resolve document: %w", err)
	}

	data, err := s.loadBytes(ctx, doc.FilePath)
	if err != nil {
		return stats, err
	}
	logger.Debug("Loaded %d bytes from %s", len(data), doc.FilePath)

	extractor, mimeType, err := s.registry.Resolve(data)
	if err != nil {
		return stats, err
	}
	stats.MIMEType = mimeType
	logger.Info("Detected media type: %s", mimeType)

	text, err := extractor.Extract(ctx, data)
	if err != nil {
		return stats, fmt.Errorf("extract %s: %w", mimeType, err)
	}
	stats.Characters = utf8.RuneCountInString(text)
	logger.Debug("Extracted %d characters", stats.Characters)

	chunks := s.chunker.ChunksFor(documentID, text)
	logger.Debug("Produced %d chunks", len(chunks))

	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i := range chunks {
			texts[i] = chunks[i].Content
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts, driven.TaskDocument)
		if err != nil {
			return stats, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, err)
		}
		for i := range chunks {
			chunks[i].Embedding = vectors[i]
		}
		logger.Debug("Embedded %d chunks with %s", len(chunks), s.embedder.ModelName())
	}

	// An empty chunk set still replaces the previous one so re-ingesting
	// an emptied document clears stale chunks.
	if err := s.vectors.Upsert(ctx, documentID, chunks); err != nil {
		return stats, fmt.Errorf("store chunks: %w", err)
	}
	stats.Chunks = len(chunks)

	doc.UpdatedAt = time.Now()
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return stats, fmt.Errorf("update document: %w", err)
	}

	logger.Info("Ingested document %s: %d chunks, %d characters", documentID, stats.Chunks, stats.Characters)
	return stats, nil
}

// loadBytes reads the document content from its storage location,
// remote URLs through the fetcher and everything else from disk.
func (s *IngestService) loadBytes(ctx context.Context, filePath string) ([]byte, error) {
	if strings.HasPrefix(filePath, "http://") || strings.HasPrefix(filePath, "https://") {
		if s.fetcher == nil {
			return nil, fmt.Errorf("%w: no fetcher configured for %s", domain.ErrInvalidInput, filePath)
		}
		return s.fetcher.Fetch(ctx, filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read document file: %w", err)
	}
	return data, nil
}

// lock acquires the per-document ingestion lock, waiting for a running
// ingestion of the same document to finish. A cancelled context stops
// the wait and reports the ingestion still in progress.
func (s *IngestService) lock(ctx context.Context, documentID string) error {
	for {
		s.mu.Lock()
		ch, held := s.locks[documentID]
		if !held {
			s.locks[documentID] = make(chan struct{})
			s.mu.Unlock()
			return nil
		}
		s.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return fmt.Errorf("%w: document %s", domain.ErrIngestInProgress, documentID)
		}
	}
}

func (s *IngestService) unlock(documentID string) {
	s.mu.Lock()
	ch := s.locks[documentID]
	delete(s.locks, documentID)
	s.mu.Unlock()
	if ch != nil {
		close(ch)
	}
}
