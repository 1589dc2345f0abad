package schema

// Source kinds recorded in Document metadata. The corpus has exactly two
// shapes of raw material: one FAQ record per tabular row, and one section of
// the scraped website dump.
const (
	SourceKindFAQRow         = "faq_row"
	SourceKindWebsiteSection = "website_section"
)

const (
	// MetadataKeySourceKind is the key for the source kind of a document.
	MetadataKeySourceKind = "source_kind"
	// MetadataKeySourceID is the key for the originating file of a document.
	MetadataKeySourceID = "source_id"
	// MetadataKeyPosition is the key for the row or section index within the
	// originating file.
	MetadataKeyPosition = "position"
	// MetadataKeyChunkIndex is the key for a chunk's ordinal within its
	// parent document, added by the splitter.
	MetadataKeyChunkIndex = "chunk_index"
)

// Document is the central data structure representing a piece of text and its
// associated data. Loaders produce one Document per raw record; the splitter
// produces one Document per chunk. It is the primary data carrier throughout
// the pipeline.
type Document struct {
	// ID is the unique identifier for this document or chunk.
	ID string `json:"id"`

	// Text is the string content.
	Text string `json:"text"`

	// Embedding is the vector representation of the text. Empty until the
	// indexing pipeline fills it in.
	Embedding []float32 `json:"embedding,omitempty"`

	// Metadata holds provenance data: source_kind, source_id, position, and
	// chunk_index once split.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// CloneMetadata returns a copy of the document's metadata so chunks never
// share a map with their parent.
func (d *Document) CloneMetadata() map[string]interface{} {
	md := make(map[string]interface{}, len(d.Metadata)+1)
	for k, v := range d.Metadata {
		md[k] = v
	}
	return md
}

// SourceKind returns the document's source kind, or "" when unset.
func (d *Document) SourceKind() string {
	kind, _ := d.Metadata[MetadataKeySourceKind].(string)
	return kind
}

// SearchResult pairs a stored document with its similarity score for one
// query. Results are ephemeral and never persisted.
type SearchResult struct {
	Document *Document
	Score    float32
}

// ConversationTurn is one question/answer exchange of a chat session. The
// caller owns the history; the pipeline never retains it across calls.
type ConversationTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
