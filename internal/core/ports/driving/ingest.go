package driving

import "context"

// IngestService runs the write-path pipeline for a document:
// fetch -> extract -> chunk -> embed -> upsert.
type IngestService interface {
	// Ingest processes the document's stored bytes into an embedded
	// chunk set. Idempotent: re-ingesting replaces the previous set.
	// Concurrent ingestion of the same document is serialised.
	Ingest(ctx context.Context, documentID string) (IngestStats, error)
}

// IngestStats summarises one ingestion run.
type IngestStats struct {
	// DocumentID is the ingested document.
	DocumentID string

	// Characters is the length of the extracted text.
	Characters int

	// Chunks is the number of chunks produced and stored.
	Chunks int

	// MIMEType is the detected media type.
	MIMEType string
}
