package loaders

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/errs"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVLoaderRowsBecomeDocuments(t *testing.T) {
	path := writeTempFile(t, "faq.csv",
		"Question,Answer,Category\n"+
			"What is Sprypt?,A payments platform,General\n"+
			"How do refunds work?,Via the dashboard,Billing\n")

	docs, err := NewCSVLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	want := "Question: What is Sprypt?\nAnswer: A payments platform\nCategory: General"
	if docs[0].Text != want {
		t.Errorf("document text = %q, want %q", docs[0].Text, want)
	}
	if docs[0].SourceKind() != schema.SourceKindFAQRow {
		t.Errorf("source kind = %q, want %q", docs[0].SourceKind(), schema.SourceKindFAQRow)
	}
	if docs[0].Metadata[schema.MetadataKeySourceID] != "faq.csv" {
		t.Errorf("source id = %v, want faq.csv", docs[0].Metadata[schema.MetadataKeySourceID])
	}
	if docs[0].Metadata[schema.MetadataKeyPosition] != 0 || docs[1].Metadata[schema.MetadataKeyPosition] != 1 {
		t.Error("row positions are not sequential from zero")
	}
}

func TestCSVLoaderSkipsEmptyCells(t *testing.T) {
	path := writeTempFile(t, "faq.csv",
		"Question,Answer,Notes\n"+
			"What is Sprypt?,A payments platform,\n")

	docs, err := NewCSVLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}

	want := "Question: What is Sprypt?\nAnswer: A payments platform"
	if docs[0].Text != want {
		t.Errorf("document text = %q, want %q", docs[0].Text, want)
	}
}

func TestCSVLoaderSkipsBlankRows(t *testing.T) {
	path := writeTempFile(t, "faq.csv",
		"Question,Answer\n"+
			",\n"+
			"Real question?,Real answer\n")

	docs, err := NewCSVLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
}

func TestCSVLoaderMissingFileIsIngestionError(t *testing.T) {
	_, err := NewCSVLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var ingErr *errs.IngestionError
	if !errors.As(err, &ingErr) {
		t.Errorf("error is %T, want *errs.IngestionError", err)
	}
}

func TestCSVLoaderMalformedFileIsIngestionError(t *testing.T) {
	path := writeTempFile(t, "broken.csv",
		"Question,Answer\n"+
			"\"unterminated quote,oops\n")

	_, err := NewCSVLoader().Load(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for malformed csv")
	}
	var ingErr *errs.IngestionError
	if !errors.As(err, &ingErr) {
		t.Errorf("error is %T, want *errs.IngestionError", err)
	}
}
