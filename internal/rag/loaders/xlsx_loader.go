package loaders

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/errs"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/interfaces"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
)

// XlsxLoader implements the Loader interface for FAQ exports kept as Excel
// workbooks. It follows the same row contract as CSVLoader: the first row of
// each sheet is the column schema, every data row is one Document.
type XlsxLoader struct{}

// NewXlsxLoader creates a new XlsxLoader.
func NewXlsxLoader() *XlsxLoader {
	return &XlsxLoader{}
}

// Load reads an .xlsx file and returns one Document per data row across all
// sheets. Row positions are numbered continuously across sheets so that every
// Document in a file gets a distinct position.
func (l *XlsxLoader) Load(ctx context.Context, path string) ([]*schema.Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &errs.IngestionError{Source: path, Err: err}
	}
	defer f.Close()

	sourceID := filepath.Base(path)

	var documents []*schema.Document
	position := 0
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, &errs.IngestionError{Source: path, Err: err}
		}
		if len(rows) == 0 {
			continue
		}

		header := rows[0]
		for _, row := range rows[1:] {
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
					schema.MetadataKeyPosition:   position,
				},
			})
			position++
		}
	}

	return documents, nil
}

// compile-time check to ensure XlsxLoader implements the Loader interface
var _ interfaces.Loader = (*XlsxLoader)(nil)
