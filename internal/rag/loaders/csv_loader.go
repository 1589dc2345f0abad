package loaders

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/errs"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/interfaces"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
)

// CSVLoader implements the Loader interface for FAQ exports in delimited
// text form. The header row defines the column schema; every data row
// becomes one Document.
type CSVLoader struct{}

// NewCSVLoader creates a new CSVLoader.
func NewCSVLoader() *CSVLoader {
	return &CSVLoader{}
}

// Load reads a CSV file and returns one Document per data row. The document
// text concatenates "<column>: <value>" lines in header order, skipping
// empty cells. Any read or parse failure is an IngestionError for the whole
// file, never per-row.
func (l *CSVLoader) Load(ctx context.Context, path string) ([]*schema.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errs.IngestionError{Source: path, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are tolerated, short cells read as empty

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &errs.IngestionError{Source: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &errs.IngestionError{Source: path, Err: fmt.Errorf("file has no header row")}
	}

	header := records[0]
	sourceID := filepath.Base(path)

	documents := make([]*schema.Document, 0, len(records)-1)
	for rowIdx, row := range records[1:] {
		text := rowText(header, row)
		if text == "" {
			continue
		}
		documents = append(documents, &schema.Document{
			ID:   uuid.New().String(),
			Text: text,
			Metadata: map[string]interface{}{
				schema.MetadataKeySourceKind: schema.SourceKindFAQRow,
				schema.MetadataKeySourceID:   sourceID,
				schema.MetadataKeyPosition:   rowIdx,
			},
		})
	}

	return documents, nil
}

// rowText renders a record as "<column>: <value>" lines in header order.
func rowText(header, row []string) string {
	var parts []string
	for i, col := range header {
		if i >= len(row) {
			break
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", strings.TrimSpace(col), value))
	}
	return strings.Join(parts, "\n")
}

// compile-time check to ensure CSVLoader implements the Loader interface
var _ interfaces.Loader = (*CSVLoader)(nil)
