package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat/docuchat/internal/core/domain"
)

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestSupportedMIMETypes(t *testing.T) {
	extractor := New()
	mimeTypes := extractor.SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "application/pdf")
	assert.Len(t, mimeTypes, 1)
}

func TestPriority(t *testing.T) {
	extractor := New()
	assert.Equal(t, 50, extractor.Priority())
}

func TestExtract_NotAPDF(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, []byte("this is not a pdf"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Empty(t, text)
}

func TestExtract_TruncatedPDF(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	// A header with no body or cross-reference table must surface as a
	// parse error, never a panic.
	text, err := extractor.Extract(ctx, []byte("%PDF-1.4\n"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Empty(t, text)
}

func TestExtract_Empty(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, nil)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Empty(t, text)
}
