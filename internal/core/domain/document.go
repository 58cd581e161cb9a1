package domain

import "time"

// Document represents an uploaded document owned by a user.
// It is immutable after upload except for renaming.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// OwnerID links to the user that uploaded the document.
	OwnerID string

	// Name is the human-readable display name.
	Name string

	// FilePath is the storage location: a local path or an http(s) URL.
	FilePath string

	// CreatedAt is when the document was uploaded.
	CreatedAt time.Time

	// UpdatedAt is when the document was last renamed or re-ingested.
	UpdatedAt time.Time
}

// Chunk is the retrieval unit: a bounded substring of a document's
// extracted text together with its embedding vector.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the chunk text.
	Content string

	// Index is the zero-based position within the document.
	// Indices are contiguous and ordered per document.
	Index int

	// Embedding is the fixed-dimensionality vector for similarity search.
	Embedding []float32

	// CreatedAt is when the chunk was ingested.
	CreatedAt time.Time
}

// ScoredChunk is a chunk paired with its similarity to a query.
type ScoredChunk struct {
	// Chunk is the retrieved chunk.
	Chunk Chunk

	// Score is the cosine similarity to the query vector.
	Score float64
}
