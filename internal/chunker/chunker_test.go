package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, c.overlap)
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		c := New(WithChunkSize(800))
		if c.chunkSize != 800 {
			t.Errorf("expected chunkSize 800, got %d", c.chunkSize)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(150))
		if c.overlap >= c.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		c := New(WithChunkSize(0), WithOverlap(-1))
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", c.overlap)
		}
	})
}

func TestSegments_Empty(t *testing.T) {
	c := New()
	if segs := c.Segments(""); len(segs) != 0 {
		t.Errorf("expected 0 segments for empty input, got %d", len(segs))
	}
	if segs := c.Segments("   \n\t  "); len(segs) != 0 {
		t.Errorf("expected 0 segments for whitespace input, got %d", len(segs))
	}
}

func TestSegments_ShortInput(t *testing.T) {
	c := New()
	segs := c.Segments("  A short document.  ")
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Text != "A short document." {
		t.Errorf("expected trimmed input back, got %q", segs[0].Text)
	}
	if segs[0].Start != 0 {
		t.Errorf("expected start 0, got %d", segs[0].Start)
	}
}

// sentences builds n copies of a 45-character sentence.
func sentences(n int) string {
	return strings.TrimSpace(strings.Repeat("The quick brown fox jumps over the lazy dog. ", n))
}

func TestSegments_ThreeParagraphDocument(t *testing.T) {
	// Three paragraphs, ~3250 characters in total, chunked at 1500/500.
	text := sentences(35) + "\n\n" + sentences(24) + "\n\n" + sentences(13)
	c := New()
	segs := c.Segments(text)

	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}

	for i, seg := range segs {
		n := len([]rune(seg.Text))
		if n == 0 {
			t.Errorf("segment %d is empty", i)
		}
		if n > DefaultChunkSize {
			t.Errorf("segment %d has %d runes, want <= %d", i, n, DefaultChunkSize)
		}
	}

	// Consecutive segments share an overlap: the head of segment i+1
	// equals the tail of segment i.
	runes := []rune(strings.TrimSpace(text))
	for i := 0; i < len(segs)-1; i++ {
		prevEnd := segs[i].Start + len([]rune(segs[i].Text))
		shared := prevEnd - segs[i+1].Start
		if shared != DefaultChunkOverlap {
			t.Errorf("segments %d/%d share %d runes, want %d", i, i+1, shared, DefaultChunkOverlap)
		}
		tail := string(runes[segs[i+1].Start:prevEnd])
		if !strings.HasPrefix(segs[i+1].Text, tail) {
			t.Errorf("segment %d head does not repeat segment %d tail", i+1, i)
		}
	}
}

func TestSegments_Reconstruction(t *testing.T) {
	// Concatenating each segment's non-overlapping portion reconstructs
	// the trimmed input losslessly.
	text := sentences(80)
	c := New()
	segs := c.Segments(text)
	if len(segs) < 2 {
		t.Fatalf("expected multiple segments, got %d", len(segs))
	}

	runes := []rune(strings.TrimSpace(text))
	var b strings.Builder
	for i, seg := range segs {
		if i < len(segs)-1 {
			b.WriteString(string(runes[seg.Start:segs[i+1].Start]))
		} else {
			b.WriteString(seg.Text)
		}
	}
	if b.String() != strings.TrimSpace(text) {
		t.Error("non-overlapping portions do not reconstruct the input")
	}
}

func TestSegments_SentenceBoundaryPreferred(t *testing.T) {
	text := sentences(80)
	c := New()
	segs := c.Segments(text)

	// Every cut before the final segment should land on a sentence end,
	// never mid-word, because the text has a boundary in every window.
	for i := 0; i < len(segs)-1; i++ {
		trimmed := strings.TrimRight(segs[i].Text, " \n")
		if !strings.HasSuffix(trimmed, ".") {
			t.Errorf("segment %d does not end at a sentence boundary: %q", i, trimmed[len(trimmed)-20:])
		}
	}
}

func TestSegments_HardCutIsRuneSafe(t *testing.T) {
	// No natural boundaries at all: forces hard cuts, which must not
	// split multi-byte runes.
	text := strings.Repeat("日", 3200)
	c := New()
	segs := c.Segments(text)

	if len(segs) < 2 {
		t.Fatalf("expected multiple segments, got %d", len(segs))
	}
	for i, seg := range segs {
		if !utf8.ValidString(seg.Text) {
			t.Errorf("segment %d contains invalid UTF-8", i)
		}
		if n := len([]rune(seg.Text)); n > DefaultChunkSize {
			t.Errorf("segment %d has %d runes, want <= %d", i, n, DefaultChunkSize)
		}
	}
}

func TestChunksFor(t *testing.T) {
	text := sentences(80)
	c := New()
	chunks := c.ChunksFor("doc-1", text)

	if len(chunks) == 0 {
		t.Fatal("expected chunks for non-empty input")
	}

	seen := make(map[string]bool)
	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d has index %d, indices must be contiguous from 0", i, chunk.Index)
		}
		if chunk.Content == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if chunk.DocumentID != "doc-1" {
			t.Errorf("chunk %d has document id %q", i, chunk.DocumentID)
		}
		if seen[chunk.ID] {
			t.Errorf("duplicate chunk id %q", chunk.ID)
		}
		seen[chunk.ID] = true
	}
}

func TestChunksFor_EmptyInput(t *testing.T) {
	c := New()
	if chunks := c.ChunksFor("doc-1", ""); len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty input, got %d", len(chunks))
	}
}
