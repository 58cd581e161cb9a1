// Package csvfile extracts text from delimited files.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/docuchat/docuchat/internal/core/domain"
	"github.com/docuchat/docuchat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles CSV and TSV files. Rows are normalised to
// comma-delimited lines so tabular content chunks the same way
// regardless of the source delimiter.
type Extractor struct{}

// New creates a new CSV extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"text/csv", "text/tab-separated-values"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Format extractor, higher than plaintext
}

// Extract parses the rows and renders them as comma-delimited lines.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	content := string(data)

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = detectDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	var result strings.Builder
	for _, record := range records {
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		line := strings.Join(record, ", ")
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

// detectDelimiter picks tab when the first line is tab separated.
func detectDelimiter(content string) rune {
	line, _, _ := strings.Cut(content, "\n")
	if strings.Count(line, "\t") > strings.Count(line, ",") {
		return '\t'
	}
	return ','
}
