package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/errs"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/interfaces"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
	"github.com/koushals-sys/Sprypt-chat-bot/pkg/logger"
)

// RetrievalPipeline orchestrates query-time retrieval: embedding the
// question and searching the vector store for the most similar chunks.
type RetrievalPipeline struct {
	embedder    interfaces.EmbeddingModel
	vectorStore interfaces.VectorStore
	log         *logger.Logger
}

// NewRetrievalPipeline creates a new RetrievalPipeline.
func NewRetrievalPipeline(
	embedder interfaces.EmbeddingModel,
	vectorStore interfaces.VectorStore,
	log *logger.Logger,
) *RetrievalPipeline {
	return &RetrievalPipeline{
		embedder:    embedder,
		vectorStore: vectorStore,
		log:         log,
	}
}

// Run embeds the query and returns the topK most similar chunks, ordered by
// descending score. Each call makes exactly one embedding call and one
// search; nothing is retried here.
func (p *RetrievalPipeline) Run(ctx context.Context, query string, history []schema.ConversationTurn, topK int) ([]schema.SearchResult, error) {
	if p.vectorStore == nil {
		return nil, &errs.RetrievalError{Err: fmt.Errorf("vector store is not available")}
	}

	embedding, err := p.embedder.Embed(ctx, retrievalQuery(query, history))
	if err != nil {
		p.log.Error(fmt.Sprintf("Failed to embed query: %v", err))
		return nil, err
	}

	results, err := p.vectorStore.Search(ctx, embedding, topK)
	if err != nil {
		p.log.Error(fmt.Sprintf("Vector search failed: %v", err))
		return nil, &errs.RetrievalError{Err: err}
	}

	p.log.Info(fmt.Sprintf("Retrieved %d chunks for query", len(results)))
	return results, nil
}

// historyQueryTurns caps how many prior user questions are folded into the
// retrieval query to keep follow-ups ("what about its pricing?") anchored.
const historyQueryTurns = 2

// retrievalQuery builds the text that gets embedded: the question itself,
// prefixed with the most recent prior questions when a conversation is in
// flight.
func retrievalQuery(query string, history []schema.ConversationTurn) string {
	if len(history) == 0 {
		return query
	}

	start := len(history) - historyQueryTurns
	if start < 0 {
		start = 0
	}

	var sb strings.Builder
	for _, turn := range history[start:] {
		sb.WriteString(turn.Question)
		sb.WriteString("\n")
	}
	sb.WriteString(query)
	return sb.String()
}
