package splitters

import (
	"context"
	"strings"
	"testing"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
)

func TestNewRecursiveSplitterValidation(t *testing.T) {
	if _, err := NewRecursiveSplitter(0, 0); err == nil {
		t.Error("expected error for zero chunk size")
	}
	if _, err := NewRecursiveSplitter(100, -1); err == nil {
		t.Error("expected error for negative overlap")
	}
	if _, err := NewRecursiveSplitter(100, 100); err == nil {
		t.Error("expected error for overlap equal to chunk size")
	}
	if _, err := NewRecursiveSplitter(100, 20); err != nil {
		t.Errorf("valid configuration rejected: %v", err)
	}
}

func TestSplitShortTextStaysWhole(t *testing.T) {
	s, err := NewRecursiveSplitter(100, 20)
	if err != nil {
		t.Fatal(err)
	}

	docs := []*schema.Document{{ID: "d1", Text: "short text"}}
	chunks, err := s.Split(context.Background(), docs)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "short text" {
		t.Errorf("chunk text = %q, want original text", chunks[0].Text)
	}
}

func TestSplitRespectsChunkSizeAndOverlap(t *testing.T) {
	s, err := NewRecursiveSplitter(50, 10)
	if err != nil {
		t.Fatal(err)
	}

	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20)
	docs := []*schema.Document{{ID: "d1", Text: text, Metadata: map[string]interface{}{
		schema.MetadataKeySourceKind: schema.SourceKindWebsiteSection,
	}}}

	chunks, err := s.Split(context.Background(), docs)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		if len(c.Text) > s.ChunkSize {
			t.Errorf("chunk %d has length %d, exceeds chunk size %d", i, len(c.Text), s.ChunkSize)
		}
		if !strings.Contains(text, c.Text) {
			t.Errorf("chunk %d is not a substring of the input", i)
		}
	}
}

func TestSplitCoversWholeText(t *testing.T) {
	s, err := NewRecursiveSplitter(40, 8)
	if err != nil {
		t.Fatal(err)
	}

	text := "Alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu nu xi omicron pi rho sigma tau upsilon."
	docs := []*schema.Document{{ID: "d1", Text: text}}

	chunks, err := s.Split(context.Background(), docs)
	if err != nil {
		t.Fatal(err)
	}

	// Chunks are contiguous spans with bounded overlap; walking them and
	// dropping each chunk's shared prefix reconstructs the input exactly.
	rebuilt := chunks[0].Text
	for i := 1; i < len(chunks); i++ {
		cur := chunks[i].Text
		overlap := 0
		max := s.ChunkOverlap
		if max > len(cur) {
			max = len(cur)
		}
		for n := max; n > 0; n-- {
			if strings.HasSuffix(rebuilt, cur[:n]) {
				overlap = n
				break
			}
		}
		rebuilt += cur[overlap:]
	}
	if rebuilt != text {
		t.Errorf("reconstructed text does not match input:\n got %q\nwant %q", rebuilt, text)
	}
}

func TestSplitKeepsFAQRowsWhole(t *testing.T) {
	s, err := NewRecursiveSplitter(20, 5)
	if err != nil {
		t.Fatal(err)
	}

	text := "Question: What payment methods does Sprypt support?\nAnswer: Cards, bank transfer, and wallets."
	docs := []*schema.Document{{
		ID:   "faq-1",
		Text: text,
		Metadata: map[string]interface{}{
			schema.MetadataKeySourceKind: schema.SourceKindFAQRow,
		},
	}}

	chunks, err := s.Split(context.Background(), docs)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("FAQ row split into %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("FAQ chunk text altered: %q", chunks[0].Text)
	}
}

func TestSplitSkipsEmptyDocuments(t *testing.T) {
	s, err := NewRecursiveSplitter(100, 20)
	if err != nil {
		t.Fatal(err)
	}

	docs := []*schema.Document{
		{ID: "empty", Text: ""},
		{ID: "d1", Text: "content"},
	}
	chunks, err := s.Split(context.Background(), docs)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
}

func TestSplitChunkMetadata(t *testing.T) {
	s, err := NewRecursiveSplitter(30, 5)
	if err != nil {
		t.Fatal(err)
	}

	docs := []*schema.Document{{
		ID:   "d1",
		Text: strings.Repeat("lorem ipsum dolor sit amet ", 8),
		Metadata: map[string]interface{}{
			schema.MetadataKeySourceKind: schema.SourceKindWebsiteSection,
			schema.MetadataKeySourceID:   "site.txt",
		},
	}}

	chunks, err := s.Split(context.Background(), docs)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Metadata[schema.MetadataKeySourceID] != "site.txt" {
			t.Errorf("chunk %d lost parent metadata", i)
		}
		if c.Metadata[schema.MetadataKeyChunkIndex] != i {
			t.Errorf("chunk %d has chunk_index %v", i, c.Metadata[schema.MetadataKeyChunkIndex])
		}
		if c.ID == docs[0].ID {
			t.Errorf("chunk %d reused the parent document ID", i)
		}
	}
	if _, ok := docs[0].Metadata[schema.MetadataKeyChunkIndex]; ok {
		t.Error("parent document metadata was mutated")
	}
}

func TestSplitDeterministicText(t *testing.T) {
	s, err := NewRecursiveSplitter(60, 12)
	if err != nil {
		t.Fatal(err)
	}

	text := strings.Repeat("Sprypt handles payments. Sprypt handles invoices.\n", 10)
	doc := func() []*schema.Document {
		return []*schema.Document{{ID: "d1", Text: text}}
	}

	first, err := s.Split(context.Background(), doc())
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Split(context.Background(), doc())
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("chunk count differs between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text {
			t.Errorf("chunk %d text differs between runs", i)
		}
	}
}
