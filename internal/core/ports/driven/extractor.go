package driven

import "context"

// Extractor converts one document format into plain text.
// Each extractor handles specific MIME types (e.g., PDF, DOCX).
// New formats are supported by registering a new implementation,
// not by extending a conditional.
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors (plain text) should return 1-9.
	Priority() int

	// Extract returns the document's merged plain text.
	// Returns domain.ErrExtractionFailed when the bytes do not parse
	// as the claimed format.
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorRegistry selects the appropriate extractor for a document.
type ExtractorRegistry interface {
	// Register adds an extractor to the registry.
	Register(e Extractor)

	// ExtractorFor returns the highest-priority extractor for the MIME type.
	// Returns domain.ErrUnsupportedFormat when no extractor matches.
	ExtractorFor(mimeType string) (Extractor, error)

	// Resolve detects a buffer's media type and returns the extractor
	// for it, together with the detected type. Unrecognised bytes that
	// are valid UTF-8 fall back to the plain text extractor; anything
	// else returns domain.ErrUnsupportedFormat.
	Resolve(data []byte) (Extractor, string, error)
}
