package loaders

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/errs"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/interfaces"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
)

// sectionMarker delimits sections in the scraped website dump. A section
// begins at a line starting with a second-level header.
const sectionMarker = "\n## "

// WebsiteLoader implements the Loader interface for the scraped website text
// dump. The website is a fallback knowledge source, so a missing file is
// tolerated and contributes zero documents.
type WebsiteLoader struct{}

// NewWebsiteLoader creates a new WebsiteLoader.
func NewWebsiteLoader() *WebsiteLoader {
	return &WebsiteLoader{}
}

// Load reads the dump and returns one Document per header-delimited section,
// with the header line restored after the split. If the file does not exist
// the loader returns no documents and no error.
func (l *WebsiteLoader) Load(ctx context.Context, path string) ([]*schema.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &errs.IngestionError{Source: path, Err: err}
	}

	sourceID := filepath.Base(path)
	sections := strings.Split(string(content), sectionMarker)

	var documents []*schema.Document
	for i, section := range sections {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		if i > 0 {
			// The split consumed the header marker; put it back.
			section = "## " + section
		}
		documents = append(documents, &schema.Document{
			ID:   uuid.New().String(),
			Text: section,
			Metadata: map[string]interface{}{
				schema.MetadataKeySourceKind: schema.SourceKindWebsiteSection,
				schema.MetadataKeySourceID:   sourceID,
				schema.MetadataKeyPosition:   i,
			},
		})
	}

	return documents, nil
}

// compile-time check to ensure WebsiteLoader implements the Loader interface
var _ interfaces.Loader = (*WebsiteLoader)(nil)
