package domain

import "errors"

// Domain errors represent pipeline and business logic failures.
// Infrastructure adapters wrap these with fmt.Errorf("%w") so callers
// can classify failures with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates the document bytes match no known
	// format signature and are not valid UTF-8 text. Not retryable.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtractionFailed indicates a recognised format could not be parsed.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrDocumentNotFound indicates the referenced document record is absent.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrEmbeddingFailed indicates the embedding service rejected or failed
	// a batch. The whole batch fails; no partial vectors are returned.
	ErrEmbeddingFailed = errors.New("embedding generation failed")

	// ErrRetrievalFailed indicates the chunk store could not serve a
	// similarity query. Distinct from ErrDocumentNotFound.
	ErrRetrievalFailed = errors.New("chunk retrieval failed")

	// ErrGenerationFailed indicates the answer-generation service failed.
	ErrGenerationFailed = errors.New("answer generation failed")

	// ErrUpstreamTimeout indicates an upstream call exceeded its deadline.
	// Safe to retry with backoff.
	ErrUpstreamTimeout = errors.New("upstream request timed out")

	// ErrUpstream indicates a hard upstream failure (non-timeout).
	ErrUpstream = errors.New("upstream request failed")

	// ErrIngestInProgress indicates an ingestion is already running for
	// the document. Concurrent ingestion of one document is serialised.
	ErrIngestInProgress = errors.New("ingestion in progress")
)
