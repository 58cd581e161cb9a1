package plaintext

import (
	"bytes"
	"context"
	"strings"

	"github.com/docuchat/docuchat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text, code, and other UTF-8 text documents.
// The bytes are returned verbatim apart from newline normalisation.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/x-go",
		"text/x-python",
		"text/x-rust",
		"text/x-java",
		"text/x-c",
		"text/x-c++",
		"text/x-ruby",
		"text/x-shellscript",
		"text/x-sql",
		"text/yaml",
		"text/toml",
		"text/javascript",
		"text/typescript",
		"text/css",
		"application/json",
		"application/xml",
		"text/xml",
		"image/svg+xml",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5 // Fallback extractor
}

// Extract decodes the bytes as UTF-8 text verbatim.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	// Strip a UTF-8 BOM if present.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	// Drop bytes that are not valid UTF-8 rather than failing: the
	// registry only routes here for text-detected or UTF-8 content.
	data = bytes.ToValidUTF8(data, nil)

	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
