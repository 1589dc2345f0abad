package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/interfaces"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
	"github.com/koushals-sys/Sprypt-chat-bot/pkg/logger"
)

const (
	// embedBatchSize bounds how many chunk texts go into one embedding
	// request.
	embedBatchSize = 64
	// embedWorkers bounds how many embedding requests run concurrently
	// during an index build.
	embedWorkers = 4
)

// IndexingPipeline orchestrates the build-time flow: splitting documents
// into chunks, embedding them in batches, and adding them to the vector
// store. Any failure aborts the build; a partial index is never served
// silently.
type IndexingPipeline struct {
	splitter    interfaces.Splitter
	embedder    interfaces.EmbeddingModel
	vectorStore interfaces.VectorStore
	log         *logger.Logger
}

// NewIndexingPipeline creates a new IndexingPipeline.
func NewIndexingPipeline(
	splitter interfaces.Splitter,
	embedder interfaces.EmbeddingModel,
	vectorStore interfaces.VectorStore,
	log *logger.Logger,
) *IndexingPipeline {
	return &IndexingPipeline{
		splitter:    splitter,
		embedder:    embedder,
		vectorStore: vectorStore,
		log:         log,
	}
}

// Run executes the indexing pipeline over the loaded documents.
func (p *IndexingPipeline) Run(ctx context.Context, docs []*schema.Document) error {
	p.log.Info(fmt.Sprintf("Starting indexing of %d documents", len(docs)))

	chunks, err := p.splitter.Split(ctx, docs)
	if err != nil {
		p.log.Error(fmt.Sprintf("Failed to split documents: %v", err))
		return err
	}
	p.log.Info(fmt.Sprintf("Split into %d chunks", len(chunks)))

	if err := p.embedChunks(ctx, chunks); err != nil {
		p.log.Error(fmt.Sprintf("Failed to embed chunks: %v", err))
		return err
	}
	p.log.Info("Successfully embedded all chunks")

	if err := p.vectorStore.Add(ctx, chunks); err != nil {
		p.log.Error(fmt.Sprintf("Failed to add chunks to vector store: %v", err))
		return err
	}

	p.log.Info(fmt.Sprintf("Successfully indexed %d chunks", len(chunks)))
	return nil
}

// embedChunks fills in the Embedding field of every chunk, batching requests
// and running a bounded number of batches concurrently. Batch results land
// at fixed offsets, so chunk order is preserved regardless of completion
// order.
func (p *IndexingPipeline) embedChunks(ctx context.Context, chunks []*schema.Document) error {
	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(embedWorkers)

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		eg.Go(func() error {
			texts := make([]string, len(batch))
			for i, chunk := range batch {
				texts[i] = chunk.Text
			}
			embeddings, err := p.embedder.EmbedBatch(gCtx, texts)
			if err != nil {
				return err
			}
			for i, chunk := range batch {
				chunk.Embedding = embeddings[i]
			}
			return nil
		})
	}

	return eg.Wait()
}
