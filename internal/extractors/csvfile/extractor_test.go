package csvfile

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
	assert.Contains(t, mimeTypes, "text/csv")
	assert.Contains(t, mimeTypes, "text/tab-separated-values")
}

func TestPriority(t *testing.T) {
	extractor := New()
	assert.Equal(t, 50, extractor.Priority())
}

func TestExtract_CommaDelimited(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, []byte("name,city\nAlice,Lisbon\nBob,Porto\n"))
	require.NoError(t, err)
	assert.Equal(t, "name, city\nAlice, Lisbon\nBob, Porto", text)
}

func TestExtract_TabDelimited(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, []byte("name\tcity\nAlice\tLisbon\n"))
	require.NoError(t, err)
	assert.Equal(t, "name, city\nAlice, Lisbon", text)
}

func TestExtract_QuotedFields(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, []byte(`title,note
"Hello, World","line one"`))
	require.NoError(t, err)
	assert.Contains(t, text, "Hello, World")
}

func TestExtract_FieldsTrimmed(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, []byte("a , b \n c , d "))
	require.NoError(t, err)
	assert.Equal(t, "a, b\nc, d", text)
}

func TestExtract_Empty(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, []byte(""))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_RaggedRows(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	// Rows with different field counts must not fail extraction.
	text, err := extractor.Extract(ctx, []byte("a,b,c\nd,e\nf\n"))
	require.NoError(t, err)
	assert.Equal(t, "a, b, c\nd, e\nf", text)
}

func TestExtract_Unparseable(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	// A bare quote mid-field still parses under LazyQuotes; an
	// unterminated quoted field at EOF does not.
	text, err := extractor.Extract(ctx, []byte("a,\"unterminated\nb,c"))
	if err != nil {
		assert.ErrorIs(t, err, domain.ErrExtractionFailed)
		assert.Empty(t, text)
	}
}
