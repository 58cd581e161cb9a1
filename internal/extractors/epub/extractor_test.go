package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat/docuchat/internal/core/domain"
)

// createTestEPUB creates a minimal EPUB container in memory.
func createTestEPUB(opfXML string, chapters map[string]string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	mime, _ := w.Create("mimetype")
	mime.Write([]byte("application/epub+zip"))

	if opfXML != "" {
		container, _ := w.Create("META-INF/container.xml")
		container.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
<rootfiles><rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/></rootfiles>
</container>`))

		opf, _ := w.Create("OEBPS/content.opf")
		opf.Write([]byte(opfXML))
	}

	for name, content := range chapters {
		chapter, _ := w.Create(name)
		chapter.Write([]byte(content))
	}

	w.Close()
	return buf.Bytes()
}

func chapterXHTML(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>chapter</title></head>
<body><p>` + body + `</p></body>
</html>`
}

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestSupportedMIMETypes(t *testing.T) {
	extractor := New()
	mimeTypes := extractor.SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "application/epub+zip")
	assert.Len(t, mimeTypes, 1)
}

func TestPriority(t *testing.T) {
	extractor := New()
	assert.Equal(t, 50, extractor.Priority())
}

func TestExtract_SpineOrder(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	// The spine lists chapter two before chapter one on purpose.
	opf := `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
<manifest>
<item id="c1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
<item id="c2" href="ch2.xhtml" media-type="application/xhtml+xml"/>
</manifest>
<spine>
<itemref idref="c2"/>
<itemref idref="c1"/>
</spine>
</package>`

	content := createTestEPUB(opf, map[string]string{
		"OEBPS/ch1.xhtml": chapterXHTML("chapter one text"),
		"OEBPS/ch2.xhtml": chapterXHTML("chapter two text"),
	})

	text, err := extractor.Extract(ctx, content)
	require.NoError(t, err)
	assert.Equal(t, "chapter two text\n\nchapter one text", text)
}

func TestExtract_MarkupStripped(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	opf := `<package xmlns="http://www.idpf.org/2007/opf">
<manifest><item id="c1" href="ch1.xhtml" media-type="application/xhtml+xml"/></manifest>
<spine><itemref idref="c1"/></spine>
</package>`

	content := createTestEPUB(opf, map[string]string{
		"OEBPS/ch1.xhtml": chapterXHTML("plain <em>emphasis</em> &amp; entities"),
	})

	text, err := extractor.Extract(ctx, content)
	require.NoError(t, err)
	assert.Contains(t, text, "plain emphasis & entities")
	assert.NotContains(t, text, "<em>")
}

func TestExtract_FallbackWithoutOPF(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	content := createTestEPUB("", map[string]string{
		"b.xhtml": chapterXHTML("second"),
		"a.xhtml": chapterXHTML("first"),
	})

	text, err := extractor.Extract(ctx, content)
	require.NoError(t, err)
	assert.Equal(t, "first\n\nsecond", text)
}

func TestExtract_InvalidZip(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, []byte("not a zip file"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Empty(t, text)
}

func TestExtract_NoChapters(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	content := createTestEPUB("", nil)

	text, err := extractor.Extract(ctx, content)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Empty(t, text)
}
