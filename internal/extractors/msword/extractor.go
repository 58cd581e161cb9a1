// Package msword extracts text from legacy binary Word (.doc) documents.
package msword

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/docuchat/docuchat/internal/core/domain"
	"github.com/docuchat/docuchat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// oleSignature is the magic number of an OLE compound file.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// minRun is the minimum number of consecutive printable characters
// treated as document text rather than structure bytes.
const minRun = 8

// Extractor handles legacy binary Word documents with a best-effort
// text recovery: printable character runs are pulled out of the OLE
// container without a full compound-file parser. Formatting, tables
// and field codes are discarded.
type Extractor struct{}

// New creates a new legacy Word extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"application/msword",
		"application/x-ole-storage",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 40 // Best-effort extractor, below exact-format parsers
}

// Extract recovers printable text runs from the compound file.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	if len(data) < len(oleSignature) || !hasPrefix(data, oleSignature) {
		return "", fmt.Errorf("%w: missing OLE signature", domain.ErrExtractionFailed)
	}

	utf16Text := collectUTF16Runs(data)
	asciiText := collectASCIIRuns(data)

	// Prefer whichever recovery found more characters. Byte length
	// would mislead here: ASCII pairs misread as UTF-16 decode into
	// multi-byte runes and inflate the wrong candidate.
	text := utf16Text
	if utf8.RuneCountInString(asciiText) > utf8.RuneCountInString(utf16Text) {
		text = asciiText
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no recoverable text", domain.ErrExtractionFailed)
	}
	return text, nil
}

func hasPrefix(data, prefix []byte) bool {
	for i := range prefix {
		if data[i] != prefix[i] {
			return false
		}
	}
	return true
}

// collectUTF16Runs gathers UTF-16LE sequences of printable characters.
func collectUTF16Runs(data []byte) string {
	var b strings.Builder
	var run []rune

	flush := func() {
		if len(run) >= minRun {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(strings.TrimSpace(string(run)))
		}
		run = run[:0]
	}

	for i := 0; i+1 < len(data); i += 2 {
		r := rune(data[i]) | rune(data[i+1])<<8
		if isDocChar(r) {
			run = append(run, normalise(r))
			continue
		}
		flush()
	}
	flush()

	return b.String()
}

// collectASCIIRuns gathers single-byte sequences of printable characters.
func collectASCIIRuns(data []byte) string {
	var b strings.Builder
	var run []rune

	flush := func() {
		if len(run) >= minRun {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(strings.TrimSpace(string(run)))
		}
		run = run[:0]
	}

	for _, c := range data {
		r := rune(c)
		if isDocChar(r) {
			run = append(run, normalise(r))
			continue
		}
		flush()
	}
	flush()

	return b.String()
}

// isDocChar reports whether a rune plausibly belongs to document text.
// Word uses 0x0D for paragraph marks and 0x0B for line breaks.
func isDocChar(r rune) bool {
	if r == '\r' || r == '\n' || r == '\t' || r == 0x0B {
		return true
	}
	if r < 0x20 || r == 0x7F {
		return false
	}
	if r >= 0xD800 && r <= 0xDFFF {
		return false
	}
	return unicode.IsPrint(r)
}

// normalise maps Word's control characters to plain newlines.
func normalise(r rune) rune {
	if r == '\r' || r == 0x0B {
		return '\n'
	}
	return r
}
