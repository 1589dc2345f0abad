package interfaces

import (
	"context"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
)

// Loader is the interface for loading data from a source file and converting
// it into a list of Document objects.
type Loader interface {
	Load(ctx context.Context, path string) ([]*schema.Document, error)
}

// Splitter is the interface for splitting a list of Documents into smaller
// chunks.
type Splitter interface {
	Split(ctx context.Context, docs []*schema.Document) ([]*schema.Document, error)
}

// VectorStore is the interface for storing document vectors and running
// nearest-neighbor similarity search over them.
type VectorStore interface {
	Add(ctx context.Context, docs []*schema.Document) error
	Search(ctx context.Context, embedding []float32, topK int) ([]schema.SearchResult, error)
}

// EmbeddingModel is the interface for a text embedding model.
type EmbeddingModel interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// LLM is the interface for a large language model that can generate text.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
