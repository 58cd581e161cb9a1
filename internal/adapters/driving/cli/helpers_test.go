package cli

import (
	"context"
	"time"

	"github.com/docuchat/docuchat/internal/core/domain"
	"github.com/docuchat/docuchat/internal/core/ports/driving"
)

// stubDocumentService serves two canned documents for user "local".
type stubDocumentService struct {
	uploadErr error
	renamed   map[string]string
	deleted   []string
}

func (s *stubDocumentService) Upload(_ context.Context, ownerID, name, filePath string) (*domain.Document, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	now := time.Now()
	return &domain.Document{
		ID: "doc-new", OwnerID: ownerID, Name: name, FilePath: filePath,
		CreatedAt: now, UpdatedAt: now,
	}, nil
}

func (s *stubDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if id != "doc-1" {
		return nil, domain.ErrDocumentNotFound
	}
	return &domain.Document{ID: "doc-1", OwnerID: "local", Name: "Test Document 1"}, nil
}

func (s *stubDocumentService) List(_ context.Context, _ string) ([]domain.Document, error) {
	now := time.Now()
	return []domain.Document{
		{ID: "doc-1", OwnerID: "local", Name: "Test Document 1", FilePath: "/tmp/one.txt", CreatedAt: now},
		{ID: "doc-2", OwnerID: "local", Name: "Test Document 2", FilePath: "/tmp/two.txt", CreatedAt: now},
	}, nil
}

func (s *stubDocumentService) Rename(_ context.Context, id, name string) error {
	if s.renamed == nil {
		s.renamed = make(map[string]string)
	}
	s.renamed[id] = name
	return nil
}

func (s *stubDocumentService) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

// stubChatService returns a scripted result.
type stubChatService struct {
	result domain.ChatResult
	tokens []string
}

func (s *stubChatService) SendMessage(_ context.Context, _, _ string) domain.ChatResult {
	return s.result
}

func (s *stubChatService) SendMessageStream(
	_ context.Context, _, _ string, onToken func(token string) error,
) domain.ChatResult {
	for _, token := range s.tokens {
		if err := onToken(token); err != nil {
			break
		}
	}
	return s.result
}

func (s *stubChatService) Converse(_ context.Context, _, _, _ string) domain.ChatResult {
	return s.result
}

func (s *stubChatService) ConverseStream(
	_ context.Context, _, _, _ string, onToken func(token string) error,
) domain.ChatResult {
	for _, token := range s.tokens {
		if err := onToken(token); err != nil {
			break
		}
	}
	return s.result
}

// stubIngestService returns scripted stats.
type stubIngestService struct {
	stats driving.IngestStats
	err   error
}

func (s *stubIngestService) Ingest(_ context.Context, documentID string) (driving.IngestStats, error) {
	if s.err != nil {
		return driving.IngestStats{DocumentID: documentID}, s.err
	}
	stats := s.stats
	stats.DocumentID = documentID
	return stats, nil
}

// setupTestServices installs stub services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	oldDocument := documentService
	oldChat := chatService
	oldIngest := ingestService

	documentService = &stubDocumentService{}
	chatService = &stubChatService{result: domain.ChatResult{Success: true, Answer: "stub answer"}}
	ingestService = &stubIngestService{stats: driving.IngestStats{MIMEType: "text/plain", Characters: 42, Chunks: 1}}

	return func() {
		documentService = oldDocument
		chatService = oldChat
		ingestService = oldIngest
	}
}
