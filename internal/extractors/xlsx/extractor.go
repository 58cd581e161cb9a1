// Package xlsx extracts text from Excel (OOXML) spreadsheets.
package xlsx

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

// Extractor handles XLSX workbooks. Only the first worksheet is
// extracted; rows come out as comma-delimited lines so the chunker
// can treat tabular data as text.
type Extractor struct{}

// New creates a new XLSX extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Format extractor
}

// Extract renders the first worksheet as comma-delimited rows.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: not a zip archive: %v", domain.ErrExtractionFailed, err)
	}

	shared, err := readSharedStrings(reader)
	if err != nil {
		return "", err
	}

	sheetFile := firstSheet(reader)
	if sheetFile == nil {
		return "", fmt.Errorf("%w: workbook has no worksheets", domain.ErrExtractionFailed)
	}

	content, err := readZipFile(sheetFile)
	if err != nil {
		return "", err
	}

	return parseSheetXML(content, shared)
}

// firstSheet returns the lowest-numbered worksheet entry in the archive.
func firstSheet(reader *zip.Reader) *zip.File {
	var sheets []*zip.File
	for _, file := range reader.File {
		if strings.HasPrefix(file.Name, "xl/worksheets/sheet") && strings.HasSuffix(file.Name, ".xml") {
			sheets = append(sheets, file)
		}
	}
	if len(sheets) == 0 {
		return nil
	}
	sort.Slice(sheets, func(i, j int) bool {
		return sheetNumber(sheets[i].Name) < sheetNumber(sheets[j].Name)
	})
	return sheets[0]
}

// sheetNumber parses the N out of xl/worksheets/sheetN.xml.
func sheetNumber(name string) int {
	name = strings.TrimPrefix(name, "xl/worksheets/sheet")
	name = strings.TrimSuffix(name, ".xml")
	n, err := strconv.Atoi(name)
	if err != nil {
		return 1 << 30
	}
	return n
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	return content, nil
}

// sharedStringsXML represents xl/sharedStrings.xml. Rich-text strings
// split across runs are joined back together.
type sharedStringsXML struct {
	Items []sharedString `xml:"si"`
}

type sharedString struct {
	Text string         `xml:"t"`
	Runs []sharedStrRun `xml:"r"`
}

type sharedStrRun struct {
	Text string `xml:"t"`
}

func (s sharedString) value() string {
	if len(s.Runs) == 0 {
		return s.Text
	}
	var b strings.Builder
	for _, r := range s.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// readSharedStrings loads the shared string table if present.
func readSharedStrings(reader *zip.Reader) ([]string, error) {
	for _, file := range reader.File {
		if file.Name != "xl/sharedStrings.xml" {
			continue
		}

		content, err := readZipFile(file)
		if err != nil {
			return nil, err
		}

		var table sharedStringsXML
		if err := xml.Unmarshal(content, &table); err != nil {
			return nil, fmt.Errorf("%w: shared strings: %v", domain.ErrExtractionFailed, err)
		}

		values := make([]string, len(table.Items))
		for i, item := range table.Items {
			values[i] = item.value()
		}
		return values, nil
	}
	return nil, nil
}

// worksheetXML represents the row data of a worksheet.
type worksheetXML struct {
	SheetData struct {
		Rows []sheetRow `xml:"row"`
	} `xml:"sheetData"`
}

type sheetRow struct {
	Cells []sheetCell `xml:"c"`
}

type sheetCell struct {
	Type   string `xml:"t,attr"`
	Value  string `xml:"v"`
	Inline struct {
		Text string `xml:"t"`
	} `xml:"is"`
}

// parseSheetXML renders rows as comma-delimited lines.
func parseSheetXML(content []byte, shared []string) (string, error) {
	var sheet worksheetXML
	if err := xml.Unmarshal(content, &sheet); err != nil {
		return "", fmt.Errorf("%w: worksheet: %v", domain.ErrExtractionFailed, err)
	}

	var result strings.Builder
	for _, row := range sheet.SheetData.Rows {
		values := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			values = append(values, cellValue(cell, shared))
		}
		line := strings.TrimRight(strings.Join(values, ", "), ", ")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(line)
	}

	return result.String(), nil
}

// cellValue resolves a cell against the shared string table.
func cellValue(cell sheetCell, shared []string) string {
	switch cell.Type {
	case "s":
		idx, err := strconv.Atoi(cell.Value)
		if err != nil || idx < 0 || idx >= len(shared) {
			return ""
		}
		return shared[idx]
	case "inlineStr":
		return cell.Inline.Text
	default:
		// Numbers, booleans and formula results carry their value inline.
		return cell.Value
	}
}
