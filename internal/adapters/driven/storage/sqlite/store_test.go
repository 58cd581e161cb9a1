package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat/docuchat/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "docuchat-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// createTestDocument creates a document to satisfy foreign key constraints.
func createTestDocument(t *testing.T, store *Store, docID, ownerID string) {
	t.Helper()
	ctx := context.Background()
	doc := &domain.Document{
		ID:       docID,
		OwnerID:  ownerID,
		Name:     "Test Document " + docID,
		FilePath: "/test/" + docID + ".txt",
	}
	require.NoError(t, store.DocumentStore().SaveDocument(ctx, doc))
}

func testChunks(documentID string, n int) []domain.Chunk {
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			ID:         uuid.NewString(),
			DocumentID: documentID,
			Content:    "chunk content",
			Index:      i,
			Embedding:  []float32{float32(i), 0.5, -1.25},
		}
	}
	return chunks
}

// ==================== Store Creation Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "docuchat-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "docuchat.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "docuchat-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

// ==================== Document Store Tests ====================

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := &domain.Document{
		ID:       "doc-1",
		OwnerID:  "user-1",
		Name:     "report.pdf",
		FilePath: "/uploads/report.pdf",
	}
	require.NoError(t, store.DocumentStore().SaveDocument(ctx, doc))

	got, err := store.DocumentStore().GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.ID)
	assert.Equal(t, "user-1", got.OwnerID)
	assert.Equal(t, "report.pdf", got.Name)
	assert.Equal(t, "/uploads/report.pdf", got.FilePath)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	doc, err := store.DocumentStore().GetDocument(context.Background(), "missing")
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	assert.Nil(t, doc)
}

func TestDocumentStore_ListNewestFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	older := &domain.Document{
		ID: "doc-old", OwnerID: "user-1", Name: "old", FilePath: "/old",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	newer := &domain.Document{
		ID: "doc-new", OwnerID: "user-1", Name: "new", FilePath: "/new",
		CreatedAt: time.Now().UTC(),
	}
	other := &domain.Document{
		ID: "doc-other", OwnerID: "user-2", Name: "other", FilePath: "/other",
	}
	require.NoError(t, store.DocumentStore().SaveDocument(ctx, older))
	require.NoError(t, store.DocumentStore().SaveDocument(ctx, newer))
	require.NoError(t, store.DocumentStore().SaveDocument(ctx, other))

	docs, err := store.DocumentStore().ListDocuments(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-new", docs[0].ID)
	assert.Equal(t, "doc-old", docs[1].ID)
}

func TestDocumentStore_Rename(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	createTestDocument(t, store, "doc-1", "user-1")

	require.NoError(t, store.DocumentStore().RenameDocument(ctx, "doc-1", "renamed.txt"))

	got, err := store.DocumentStore().GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "renamed.txt", got.Name)
}

func TestDocumentStore_RenameNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.DocumentStore().RenameDocument(context.Background(), "missing", "name")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestDocumentStore_DeleteCascadesChunks(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	createTestDocument(t, store, "doc-1", "user-1")
	require.NoError(t, store.DocumentStore().ReplaceChunks(ctx, "doc-1", testChunks("doc-1", 3)))

	require.NoError(t, store.DocumentStore().DeleteDocument(ctx, "doc-1"))

	count, err := store.DocumentStore().CountChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDocumentStore_DeleteCascadesOnEveryPooledConnection(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	createTestDocument(t, store, "doc-1", "user-1")
	require.NoError(t, store.DocumentStore().ReplaceChunks(ctx, "doc-1", testChunks("doc-1", 3)))

	// Pin the connection that ran the setup so the delete is forced
	// onto a fresh pooled connection. foreign_keys is per-connection
	// in SQLite; the cascade must hold regardless of which connection
	// the pool hands out.
	conn, err := store.db.Conn(ctx)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, store.DocumentStore().DeleteDocument(ctx, "doc-1"))

	count, err := store.DocumentStore().CountChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDocumentStore_DeleteNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.DocumentStore().DeleteDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestDocumentStore_ReplaceChunks(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	createTestDocument(t, store, "doc-1", "user-1")

	first := testChunks("doc-1", 5)
	require.NoError(t, store.DocumentStore().ReplaceChunks(ctx, "doc-1", first))

	count, err := store.DocumentStore().CountChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	// A second ingest replaces the full set, never appends.
	second := testChunks("doc-1", 2)
	require.NoError(t, store.DocumentStore().ReplaceChunks(ctx, "doc-1", second))

	chunks, err := store.DocumentStore().GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, second[0].ID, chunks[0].ID)
	assert.Equal(t, second[1].ID, chunks[1].ID)
}

func TestDocumentStore_ChunksOrderedByIndex(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	createTestDocument(t, store, "doc-1", "user-1")

	// Insert in reversed order; reads must come back by index.
	chunks := testChunks("doc-1", 4)
	reversed := []domain.Chunk{chunks[3], chunks[2], chunks[1], chunks[0]}
	require.NoError(t, store.DocumentStore().ReplaceChunks(ctx, "doc-1", reversed))

	got, err := store.DocumentStore().GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i, chunk := range got {
		assert.Equal(t, i, chunk.Index)
	}
}

func TestDocumentStore_EmbeddingRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	createTestDocument(t, store, "doc-1", "user-1")

	embedding := []float32{0.1, -0.25, 3.5, 0, -1e-7}
	chunks := []domain.Chunk{{
		ID:         uuid.NewString(),
		DocumentID: "doc-1",
		Content:    "content",
		Index:      0,
		Embedding:  embedding,
	}}
	require.NoError(t, store.DocumentStore().ReplaceChunks(ctx, "doc-1", chunks))

	got, err := store.DocumentStore().GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, embedding, got[0].Embedding)
}

// ==================== Chat Store Tests ====================

func TestChatStore_SaveAndGetConversation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	createTestDocument(t, store, "doc-1", "user-1")

	docID := "doc-1"
	conv := &domain.Conversation{
		ID:         "conv-1",
		OwnerID:    "user-1",
		DocumentID: &docID,
		Title:      "About the report",
	}
	require.NoError(t, store.ChatStore().SaveConversation(ctx, conv))

	got, err := store.ChatStore().GetConversation(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "conv-1", got.ID)
	require.NotNil(t, got.DocumentID)
	assert.Equal(t, "doc-1", *got.DocumentID)
	assert.Equal(t, "About the report", got.Title)
}

func TestChatStore_ConversationWithoutDocument(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	conv := &domain.Conversation{ID: "conv-1", OwnerID: "user-1"}
	require.NoError(t, store.ChatStore().SaveConversation(ctx, conv))

	got, err := store.ChatStore().GetConversation(ctx, "conv-1")
	require.NoError(t, err)
	assert.Nil(t, got.DocumentID)
}

func TestChatStore_GetConversationNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	conv, err := store.ChatStore().GetConversation(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, conv)
}

func TestChatStore_AppendAndListMessages(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	conv := &domain.Conversation{ID: "conv-1", OwnerID: "user-1"}
	require.NoError(t, store.ChatStore().SaveConversation(ctx, conv))

	base := time.Now().UTC().Truncate(time.Second)
	question := &domain.Message{
		ID: "msg-1", ConversationID: "conv-1",
		Role: domain.RoleUser, Content: "What does it say?",
		CreatedAt: base,
	}
	answer := &domain.Message{
		ID: "msg-2", ConversationID: "conv-1",
		Role: domain.RoleAssistant, Content: "It says hello.",
		CreatedAt: base.Add(time.Second),
	}
	require.NoError(t, store.ChatStore().AppendMessage(ctx, question))
	require.NoError(t, store.ChatStore().AppendMessage(ctx, answer))

	messages, err := store.ChatStore().ListMessages(ctx, "conv-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, domain.RoleUser, messages[0].Role)
	assert.Equal(t, domain.RoleAssistant, messages[1].Role)
	assert.Equal(t, "It says hello.", messages[1].Content)
}

func TestChatStore_AppendMessageBumpsConversation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	conv := &domain.Conversation{ID: "conv-1", OwnerID: "user-1"}
	require.NoError(t, store.ChatStore().SaveConversation(ctx, conv))

	later := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	msg := &domain.Message{
		ID: "msg-1", ConversationID: "conv-1",
		Role: domain.RoleUser, Content: "hi",
		CreatedAt: later,
	}
	require.NoError(t, store.ChatStore().AppendMessage(ctx, msg))

	got, err := store.ChatStore().GetConversation(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, later, got.UpdatedAt.UTC().Truncate(time.Second))
}

func TestChatStore_DeleteCascadesMessages(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	conv := &domain.Conversation{ID: "conv-1", OwnerID: "user-1"}
	require.NoError(t, store.ChatStore().SaveConversation(ctx, conv))
	msg := &domain.Message{
		ID: "msg-1", ConversationID: "conv-1",
		Role: domain.RoleUser, Content: "hi",
	}
	require.NoError(t, store.ChatStore().AppendMessage(ctx, msg))

	require.NoError(t, store.ChatStore().DeleteConversation(ctx, "conv-1"))

	messages, err := store.ChatStore().ListMessages(ctx, "conv-1")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestChatStore_ListConversationsNewestFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first := &domain.Conversation{ID: "conv-1", OwnerID: "user-1"}
	second := &domain.Conversation{ID: "conv-2", OwnerID: "user-1"}
	require.NoError(t, store.ChatStore().SaveConversation(ctx, first))
	require.NoError(t, store.ChatStore().SaveConversation(ctx, second))

	// Touch the first conversation so it becomes the most recent.
	msg := &domain.Message{
		ID: "msg-1", ConversationID: "conv-1",
		Role: domain.RoleUser, Content: "bump",
		CreatedAt: time.Now().UTC().Add(time.Minute),
	}
	require.NoError(t, store.ChatStore().AppendMessage(ctx, msg))

	convs, err := store.ChatStore().ListConversations(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "conv-1", convs[0].ID)
}

// ==================== Encoding Tests ====================

func TestFloat32BytesRoundTrip(t *testing.T) {
	vec := []float32{1.5, -2.25, 0, 3.14159, -0.0001}
	assert.Equal(t, vec, bytesToFloat32Slice(float32SliceToBytes(vec)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
