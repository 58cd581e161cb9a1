// Package pptx extracts text from PowerPoint (OOXML) presentations.
package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/docuchat/docuchat/internal/core/domain"
	"github.com/docuchat/docuchat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PPTX presentations. Slides are processed in
// numeric order and each slide's text runs are joined into one block.
type Extractor struct{}

// New creates a new PPTX extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Format extractor
}

// Extract returns slide text in slide order, slides separated by blank lines.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: not a zip archive: %v", domain.ErrExtractionFailed, err)
	}

	slides := slideFiles(reader)
	if len(slides) == 0 {
		return "", fmt.Errorf("%w: presentation has no slides", domain.ErrExtractionFailed)
	}

	var result strings.Builder
	for _, file := range slides {
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
		}

		text := parseSlideXML(content)
		if text == "" {
			continue
		}

		if result.Len() > 0 {
			result.WriteString("\n\n")
		}
		result.WriteString(text)
	}

	return result.String(), nil
}

// slideFiles returns ppt/slides/slideN.xml entries sorted by N.
// Zip entry order is not reliable for slide order.
func slideFiles(reader *zip.Reader) []*zip.File {
	var slides []*zip.File
	for _, file := range reader.File {
		if strings.HasPrefix(file.Name, "ppt/slides/slide") && strings.HasSuffix(file.Name, ".xml") {
			slides = append(slides, file)
		}
	}
	sort.Slice(slides, func(i, j int) bool {
		return slideNumber(slides[i].Name) < slideNumber(slides[j].Name)
	})
	return slides
}

func slideNumber(name string) int {
	name = strings.TrimPrefix(name, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	n, err := strconv.Atoi(name)
	if err != nil {
		return 1 << 30
	}
	return n
}

// parseSlideXML collects the text runs of a slide. DrawingML nests runs
// deeply, so a token scan for <a:t> elements beats a struct mapping.
func parseSlideXML(content []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var parts []string
	inText := false
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				parts = append(parts, string(t))
			}
		}
	}

	return strings.TrimSpace(strings.Join(parts, "\n"))
}
