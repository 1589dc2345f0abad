package loaders

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/errs"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
)

func writeTempWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "faq.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestXlsxLoaderRowsBecomeDocuments(t *testing.T) {
	path := writeTempWorkbook(t, [][]interface{}{
		{"Question", "Answer"},
		{"What is Sprypt?", "A payments platform"},
		{"How do refunds work?", "Via the dashboard"},
	})

	docs, err := NewXlsxLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	want := "Question: What is Sprypt?\nAnswer: A payments platform"
	if docs[0].Text != want {
		t.Errorf("document text = %q, want %q", docs[0].Text, want)
	}
	if docs[0].SourceKind() != schema.SourceKindFAQRow {
		t.Errorf("source kind = %q", docs[0].SourceKind())
	}
	if docs[0].Metadata[schema.MetadataKeyPosition] != 0 || docs[1].Metadata[schema.MetadataKeyPosition] != 1 {
		t.Error("row positions are not sequential from zero")
	}
}

func TestXlsxLoaderSkipsBlankRows(t *testing.T) {
	path := writeTempWorkbook(t, [][]interface{}{
		{"Question", "Answer"},
		{"", ""},
		{"Real question?", "Real answer"},
	})

	docs, err := NewXlsxLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
}

func TestXlsxLoaderMissingFileIsIngestionError(t *testing.T) {
	_, err := NewXlsxLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.xlsx"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var ingErr *errs.IngestionError
	if !errors.As(err, &ingErr) {
		t.Errorf("error is %T, want *errs.IngestionError", err)
	}
}
