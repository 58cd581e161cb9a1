package extractors

import (
	"fmt"
	"mime"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/docuchat/docuchat/internal/core/domain"
	"github.com/docuchat/docuchat/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps MIME types to extractors, preferring higher priority
// when several extractors claim the same type.
type Registry struct {
	mu         sync.RWMutex
	byMIME     map[string]driven.Extractor
	priorities map[string]int
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		byMIME:     make(map[string]driven.Extractor),
		priorities: make(map[string]int),
	}
}

// Register adds an extractor for each of its supported MIME types.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mt := range e.SupportedMIMETypes() {
		mt = normaliseMIME(mt)
		if existing, ok := r.priorities[mt]; ok && existing >= e.Priority() {
			continue
		}
		r.byMIME[mt] = e
		r.priorities[mt] = e.Priority()
	}
}

// ExtractorFor returns the registered extractor for the MIME type.
func (r *Registry) ExtractorFor(mimeType string) (driven.Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byMIME[normaliseMIME(mimeType)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, mimeType)
	}
	return e, nil
}

// normaliseMIME strips parameters such as charset and lowercases the type.
func normaliseMIME(mimeType string) string {
	parsed, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mimeType))
	}
	return parsed
}

// Detect determines a buffer's media type from its byte content.
// An empty buffer detects as plain text so that empty uploads extract
// to empty text rather than failing.
func Detect(data []byte) string {
	if len(data) == 0 {
		return "text/plain"
	}
	return mimetype.Detect(data).String()
}

// Resolve picks the extractor for a buffer: detection first, then the
// registry. A detection with no registered extractor falls back to the
// plain text extractor when the bytes are valid UTF-8; anything else is
// an unsupported binary format.
func (r *Registry) Resolve(data []byte) (driven.Extractor, string, error) {
	detected := normaliseMIME(Detect(data))

	e, err := r.ExtractorFor(detected)
	if err == nil {
		return e, detected, nil
	}

	if strings.HasPrefix(detected, "text/") || utf8.Valid(data) {
		e, fallbackErr := r.ExtractorFor("text/plain")
		if fallbackErr == nil {
			return e, detected, nil
		}
	}

	return nil, detected, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, detected)
}
