package loaders

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
)

func TestWebsiteLoaderSplitsOnHeaders(t *testing.T) {
	content := "Sprypt.com - Home\nWelcome to Sprypt.\n" +
		"\n## Pricing\nPlans start at $10 per month.\n" +
		"\n## Support\nReach us at help.sprypt.com.\n"
	path := writeTempFile(t, "site.txt", content)

	docs, err := NewWebsiteLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(docs))
	}

	if docs[0].Text != "Sprypt.com - Home\nWelcome to Sprypt." {
		t.Errorf("first section = %q", docs[0].Text)
	}
	if docs[1].Text != "## Pricing\nPlans start at $10 per month." {
		t.Errorf("second section lost its header: %q", docs[1].Text)
	}
	for i, d := range docs {
		if d.SourceKind() != schema.SourceKindWebsiteSection {
			t.Errorf("section %d source kind = %q", i, d.SourceKind())
		}
		if d.Metadata[schema.MetadataKeySourceID] != "site.txt" {
			t.Errorf("section %d source id = %v", i, d.Metadata[schema.MetadataKeySourceID])
		}
	}
}

func TestWebsiteLoaderMissingFileIsNotAnError(t *testing.T) {
	docs, err := NewWebsiteLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("missing website file should not error, got %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected 0 documents, got %d", len(docs))
	}
}

func TestWebsiteLoaderSkipsEmptySections(t *testing.T) {
	path := writeTempFile(t, "site.txt", "\n## Empty\n\n\n## Real\nActual content here.\n")

	docs, err := NewWebsiteLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
}
