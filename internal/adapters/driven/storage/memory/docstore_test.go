package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat/docuchat/internal/core/domain"
)

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", OwnerID: "user-1", Name: "notes.txt", FilePath: "/notes.txt"}
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", got.Name)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	store := NewDocumentStore()

	doc, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	assert.Nil(t, doc)
}

func TestDocumentStore_ListNewestFirst(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	older := &domain.Document{ID: "a", OwnerID: "u", CreatedAt: time.Now().UTC().Add(-time.Hour)}
	newer := &domain.Document{ID: "b", OwnerID: "u", CreatedAt: time.Now().UTC()}
	other := &domain.Document{ID: "c", OwnerID: "someone-else"}
	require.NoError(t, store.SaveDocument(ctx, older))
	require.NoError(t, store.SaveDocument(ctx, newer))
	require.NoError(t, store.SaveDocument(ctx, other))

	docs, err := store.ListDocuments(ctx, "u")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[0].ID)
	assert.Equal(t, "a", docs[1].ID)
}

func TestDocumentStore_Rename(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1", OwnerID: "u", Name: "old"}))
	require.NoError(t, store.RenameDocument(ctx, "doc-1", "new"))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)

	assert.ErrorIs(t, store.RenameDocument(ctx, "missing", "x"), domain.ErrDocumentNotFound)
}

func TestDocumentStore_ReplaceChunks(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1", OwnerID: "u"}))

	first := []domain.Chunk{
		{ID: "c2", DocumentID: "doc-1", Index: 1},
		{ID: "c1", DocumentID: "doc-1", Index: 0},
	}
	require.NoError(t, store.ReplaceChunks(ctx, "doc-1", first))

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "c1", chunks[0].ID)
	assert.Equal(t, "c2", chunks[1].ID)

	require.NoError(t, store.ReplaceChunks(ctx, "doc-1", []domain.Chunk{{ID: "c3", DocumentID: "doc-1", Index: 0}}))

	count, err := store.CountChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDocumentStore_DeleteRemovesChunks(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1", OwnerID: "u"}))
	require.NoError(t, store.ReplaceChunks(ctx, "doc-1", []domain.Chunk{{ID: "c1", DocumentID: "doc-1"}}))

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	count, err := store.CountChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, store.DeleteDocument(ctx, "doc-1"), domain.ErrDocumentNotFound)
}
