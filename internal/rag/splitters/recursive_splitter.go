package splitters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/interfaces"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
)

// separators are the structural boundaries tried largest-first when choosing
// a cut point: paragraph break, line break, sentence end, word boundary.
// When none occurs inside the window the splitter falls back to a hard
// character cut.
var separators = []string{"\n\n", "\n", ". ", " "}

// RecursiveSplitter implements the Splitter interface by cutting document
// text at the largest structural boundary that keeps each chunk within
// ChunkSize, with consecutive chunks sharing up to ChunkOverlap characters.
type RecursiveSplitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewRecursiveSplitter creates a new RecursiveSplitter. ChunkOverlap must be
// smaller than ChunkSize or every cut would lose ground.
func NewRecursiveSplitter(chunkSize, chunkOverlap int) (*RecursiveSplitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", chunkSize, chunkOverlap)
	}
	return &RecursiveSplitter{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}, nil
}

// Split splits each document into chunks, processing documents independently
// and preserving order. FAQ rows are single semantic units: they are kept
// whole even above ChunkSize rather than severed mid-record. Chunk metadata
// inherits the parent document's and adds a chunk_index.
func (s *RecursiveSplitter) Split(ctx context.Context, docs []*schema.Document) ([]*schema.Document, error) {
	var chunks []*schema.Document

	for _, doc := range docs {
		if doc.Text == "" {
			continue
		}

		var parts []string
		if doc.SourceKind() == schema.SourceKindFAQRow {
			parts = []string{doc.Text}
		} else {
			parts = s.splitText(doc.Text)
		}

		for i, part := range parts {
			md := doc.CloneMetadata()
			md[schema.MetadataKeyChunkIndex] = i
			chunks = append(chunks, &schema.Document{
				ID:       uuid.New().String(),
				Text:     part,
				Metadata: md,
			})
		}
	}

	return chunks, nil
}

// splitText cuts text into overlapping contiguous spans. Every chunk is a
// literal substring of the input, each chunk after the first starting at
// most ChunkOverlap characters before the previous chunk's end, so the
// original text is exactly reconstructible by de-duplicating the overlaps.
func (s *RecursiveSplitter) splitText(text string) []string {
	if len(text) <= s.ChunkSize {
		return []string{text}
	}

	var parts []string
	start := 0
	for {
		if len(text)-start <= s.ChunkSize {
			parts = append(parts, text[start:])
			return parts
		}

		cut := s.cutPoint(text, start)
		parts = append(parts, text[start:cut])

		// Back up to keep context across the boundary, but always move
		// forward relative to the previous chunk's start.
		next := cut - s.ChunkOverlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
}

// cutPoint returns the end of the chunk beginning at start: the position
// just after the last occurrence of the largest applicable separator within
// the window, or a hard cut at ChunkSize when no separator occurs.
func (s *RecursiveSplitter) cutPoint(text string, start int) int {
	window := text[start : start+s.ChunkSize]
	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return start + idx + len(sep)
		}
	}
	return start + s.ChunkSize
}

// compile-time check to ensure RecursiveSplitter implements the Splitter interface
var _ interfaces.Splitter = (*RecursiveSplitter)(nil)
