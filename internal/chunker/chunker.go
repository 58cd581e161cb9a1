// Package chunker splits extracted document text into overlapping
// fixed-size segments suitable for embedding.
package chunker

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docuchat/docuchat/internal/core/domain"
)

// DefaultChunkSize is the default target number of characters per chunk.
const DefaultChunkSize = 1500

// DefaultChunkOverlap is the default number of overlapping characters
// between consecutive chunks.
const DefaultChunkOverlap = 500

// Chunker splits text into overlapping segments, cutting preferentially
// at paragraph, sentence, then word boundaries, and falling back to a
// hard character cut only when no natural boundary exists within the
// target window.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Segment is one window of the source text.
type Segment struct {
	// Text is the segment content, untrimmed.
	Text string

	// Start is the rune offset of the segment within the trimmed input.
	Start int
}

// Segments splits text into overlapping windows. Lengths are measured
// in runes so multi-byte characters are never split.
func (c *Chunker) Segments(text string) []Segment {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	n := len(runes)
	if n <= c.chunkSize {
		return []Segment{{Text: text, Start: 0}}
	}

	estimated := n/(c.chunkSize-c.overlap) + 1
	segments := make([]Segment, 0, estimated)

	start := 0
	for start < n {
		end := start + c.chunkSize
		if end >= n {
			end = n
		} else {
			end = c.cut(runes, start, end)
		}

		segments = append(segments, Segment{
			Text:  string(runes[start:end]),
			Start: start,
		})

		if end >= n {
			break
		}

		next := end - c.overlap
		if next <= start {
			// Guarantee forward progress when the overlap swallows
			// the whole segment.
			next = start + 1
		}
		start = next
	}

	return segments
}

// ChunksFor splits text and wraps each non-empty segment as a
// domain.Chunk with contiguous zero-based indices.
func (c *Chunker) ChunksFor(documentID, text string) []domain.Chunk {
	segments := c.Segments(text)
	if len(segments) == 0 {
		return nil
	}

	now := time.Now()
	chunks := make([]domain.Chunk, 0, len(segments))
	for _, seg := range segments {
		content := strings.TrimSpace(seg.Text)
		if content == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			Content:    content,
			Index:      len(chunks),
			CreatedAt:  now,
		})
	}

	return chunks
}

// cut picks the end of the window [start, start+chunkSize), preferring
// a paragraph break, then a sentence end, then a line break, then a
// word break. Boundaries in the first half of the window are ignored so
// every chunk keeps a useful amount of content.
func (c *Chunker) cut(runes []rune, start, end int) int {
	floor := start + c.chunkSize/2

	// Paragraph boundary: blank line.
	for i := end - 2; i > floor; i-- {
		if runes[i] == '\n' && runes[i+1] == '\n' {
			return i + 2
		}
	}

	// Sentence boundary: terminator followed by whitespace.
	for i := end - 2; i > floor; i-- {
		if isSentenceEnd(runes[i]) && isSpace(runes[i+1]) {
			return i + 1
		}
	}

	// Line boundary.
	for i := end - 1; i > floor; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
	}

	// Word boundary.
	for i := end - 1; i > floor; i-- {
		if runes[i] == ' ' || runes[i] == '\t' {
			return i + 1
		}
	}

	// Hard cut.
	return end
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
