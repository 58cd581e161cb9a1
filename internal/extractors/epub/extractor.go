// Package epub extracts text from EPUB e-books.
package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/docuchat/docuchat/internal/core/domain"
	"github.com/docuchat/docuchat/internal/core/ports/driven"
	"github.com/docuchat/docuchat/internal/extractors/htmltext"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles EPUB containers. Chapters are read in spine order
// when the package document is parseable, otherwise in archive order.
type Extractor struct{}

// New creates a new EPUB extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"application/epub+zip"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Format extractor
}

// Extract returns chapter text in reading order, chapters separated by
// blank lines.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: not a zip archive: %v", domain.ErrExtractionFailed, err)
	}

	files := make(map[string]*zip.File, len(reader.File))
	for _, file := range reader.File {
		files[file.Name] = file
	}

	chapters := spineChapters(files)
	if len(chapters) == 0 {
		chapters = fallbackChapters(reader)
	}
	if len(chapters) == 0 {
		return "", fmt.Errorf("%w: no readable chapters", domain.ErrExtractionFailed)
	}

	var result strings.Builder
	for _, file := range chapters {
		content, err := readZipFile(file)
		if err != nil {
			continue
		}

		text := htmltext.StripHTML(string(content))
		if text == "" {
			continue
		}

		if result.Len() > 0 {
			result.WriteString("\n\n")
		}
		result.WriteString(text)
	}

	if result.Len() == 0 {
		return "", fmt.Errorf("%w: no readable chapters", domain.ErrExtractionFailed)
	}
	return result.String(), nil
}

// containerXML represents META-INF/container.xml.
type containerXML struct {
	Rootfiles struct {
		Rootfile []struct {
			FullPath string `xml:"full-path,attr"`
		} `xml:"rootfile"`
	} `xml:"rootfiles"`
}

// packageXML represents the OPF package document: the manifest maps
// item ids to hrefs, the spine orders them.
type packageXML struct {
	Manifest struct {
		Items []struct {
			ID        string `xml:"id,attr"`
			Href      string `xml:"href,attr"`
			MediaType string `xml:"media-type,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

// spineChapters resolves the reading order from the package document.
func spineChapters(files map[string]*zip.File) []*zip.File {
	container, ok := files["META-INF/container.xml"]
	if !ok {
		return nil
	}

	content, err := readZipFile(container)
	if err != nil {
		return nil
	}

	var c containerXML
	if err := xml.Unmarshal(content, &c); err != nil || len(c.Rootfiles.Rootfile) == 0 {
		return nil
	}

	opfPath := c.Rootfiles.Rootfile[0].FullPath
	opfFile, ok := files[opfPath]
	if !ok {
		return nil
	}

	content, err = readZipFile(opfFile)
	if err != nil {
		return nil
	}

	var pkg packageXML
	if err := xml.Unmarshal(content, &pkg); err != nil {
		return nil
	}

	hrefs := make(map[string]string, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		if strings.Contains(item.MediaType, "html") {
			hrefs[item.ID] = item.Href
		}
	}

	// Hrefs in the manifest are relative to the OPF document.
	base := path.Dir(opfPath)

	var chapters []*zip.File
	for _, ref := range pkg.Spine.ItemRefs {
		href, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}
		name := href
		if base != "." {
			name = path.Join(base, href)
		}
		if file, ok := files[name]; ok {
			chapters = append(chapters, file)
		}
	}
	return chapters
}

// fallbackChapters returns every XHTML entry in path order when the
// package document is missing or broken.
func fallbackChapters(reader *zip.Reader) []*zip.File {
	var chapters []*zip.File
	for _, file := range reader.File {
		name := strings.ToLower(file.Name)
		if strings.HasSuffix(name, ".xhtml") || strings.HasSuffix(name, ".html") || strings.HasSuffix(name, ".htm") {
			chapters = append(chapters, file)
		}
	}
	sort.Slice(chapters, func(i, j int) bool {
		return chapters[i].Name < chapters[j].Name
	})
	return chapters
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
