package extractors

import (
	"github.com/docuchat/docuchat/internal/extractors/csvfile"
	"github.com/docuchat/docuchat/internal/extractors/docx"
	"github.com/docuchat/docuchat/internal/extractors/epub"
	"github.com/docuchat/docuchat/internal/extractors/htmltext"
	"github.com/docuchat/docuchat/internal/extractors/markdown"
	"github.com/docuchat/docuchat/internal/extractors/msword"
	"github.com/docuchat/docuchat/internal/extractors/pdf"
	"github.com/docuchat/docuchat/internal/extractors/plaintext"
	"github.com/docuchat/docuchat/internal/extractors/pptx"
	"github.com/docuchat/docuchat/internal/extractors/xlsx"
)

// DefaultRegistry returns a registry with every built-in extractor
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(htmltext.New())
	r.Register(csvfile.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	r.Register(msword.New())
	r.Register(xlsx.New())
	r.Register(pptx.New())
	r.Register(epub.New())
	return r
}
