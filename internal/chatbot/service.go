package chatbot

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/config"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/embeddings"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/errs"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/interfaces"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/llms"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/loaders"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/pipeline"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/splitters"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/storages/vectorstore"
	"github.com/koushals-sys/Sprypt-chat-bot/pkg/logger"
)

// sourcePreviewLen is the fixed excerpt length for the source previews
// returned with every answer.
const sourcePreviewLen = 200

// ErrEmptyQuestion is returned when a blank question slips past the serving
// layer's validation.
var ErrEmptyQuestion = errors.New("question must not be empty")

// Answer is the result of one question: the synthesized text, preview
// excerpts of the chunks placed in context, the chunks themselves, and the
// caller's history extended with this exchange.
type Answer struct {
	Text       string
	Sources    []string
	UsedChunks []*schema.Document
	History    []schema.ConversationTurn
}

// Service is the question-answering boundary the serving layer talks to. It
// is constructed once at startup and passed by handle into every request
// path; until Init succeeds it reports not ready and refuses questions.
type Service struct {
	cfg      *config.AppConfig
	log      *logger.Logger
	embedder interfaces.EmbeddingModel
	llm      interfaces.LLM
	qa       *pipeline.QAPipeline

	mu        sync.RWMutex
	store     *vectorstore.LocalStore
	retrieval *pipeline.RetrievalPipeline
}

// New creates a Service with explicit embedding and generation models,
// used directly by tests.
func New(cfg *config.AppConfig, log *logger.Logger, embedder interfaces.EmbeddingModel, llm interfaces.LLM) *Service {
	return &Service{
		cfg:      cfg,
		log:      log,
		embedder: embedder,
		llm:      llm,
		qa:       pipeline.NewQAPipeline(llm, log),
	}
}

// NewFromConfig creates a Service wired to the OpenAI embedding and chat
// services named in the configuration.
func NewFromConfig(cfg *config.AppConfig, log *logger.Logger) *Service {
	embedder := embeddings.NewOpenAIModel(cfg.OpenAI.APIKey, cfg.OpenAI.EmbeddingModel)
	llm := llms.NewOpenAIChat(cfg.OpenAI.APIKey, cfg.OpenAI.ChatModel, cfg.OpenAI.Temperature)
	return New(cfg, log, embedder, llm)
}

// Ready reports whether the index is available and questions can be
// answered.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store != nil
}

// Init makes the service ready: it loads the persisted index, or rebuilds it
// from the corpus sources when no usable snapshot exists or a reload is
// forced. Index construction is single-writer; Init must not run
// concurrently with Answer.
func (s *Service) Init(ctx context.Context) error {
	if s.cfg.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not configured")
	}

	var store *vectorstore.LocalStore
	if !s.cfg.Index.ForceReload {
		loaded, err := vectorstore.Load(s.cfg.Index.Dir, s.cfg.OpenAI.EmbeddingModel, s.log)
		if err != nil {
			return err
		}
		store = loaded
	}

	if store == nil {
		s.log.Info("Building new vector index from corpus sources")
		built, err := s.buildIndex(ctx)
		if err != nil {
			return err
		}
		store = built
	}

	s.mu.Lock()
	s.store = store
	s.retrieval = pipeline.NewRetrievalPipeline(s.embedder, store, s.log)
	s.mu.Unlock()

	s.log.Info(fmt.Sprintf("Chatbot ready with %d indexed chunks", store.Size()))
	return nil
}

// buildIndex loads every corpus source, runs the indexing pipeline, and
// persists the result. Any ingestion or embedding failure aborts the build
// so a partial index is never served.
func (s *Service) buildIndex(ctx context.Context) (*vectorstore.LocalStore, error) {
	docs, err := s.loadSources(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info(fmt.Sprintf("Loaded %d documents from corpus sources", len(docs)))

	splitter, err := splitters.NewRecursiveSplitter(s.cfg.Chunking.ChunkSize, s.cfg.Chunking.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	store := vectorstore.NewLocalStore(s.cfg.OpenAI.EmbeddingModel, s.log)
	indexing := pipeline.NewIndexingPipeline(splitter, s.embedder, store, s.log)
	if err := indexing.Run(ctx, docs); err != nil {
		return nil, err
	}

	if err := store.Save(s.cfg.Index.Dir); err != nil {
		return nil, fmt.Errorf("failed to persist index: %w", err)
	}
	s.log.Info(fmt.Sprintf("Persisted index to %s", s.cfg.Index.Dir))
	return store, nil
}

// loadSources reads the FAQ exports (required) and the website dump
// (fallback, tolerated missing) into documents.
func (s *Service) loadSources(ctx context.Context) ([]*schema.Document, error) {
	var docs []*schema.Document

	for _, path := range s.cfg.Sources.FAQFiles {
		var loader interfaces.Loader
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx":
			loader = loaders.NewXlsxLoader()
		default:
			loader = loaders.NewCSVLoader()
		}
		loaded, err := loader.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		s.log.Info(fmt.Sprintf("Loaded %d FAQ documents from %s", len(loaded), path))
		docs = append(docs, loaded...)
	}

	if s.cfg.Sources.WebsiteFile != "" {
		loaded, err := loaders.NewWebsiteLoader().Load(ctx, s.cfg.Sources.WebsiteFile)
		if err != nil {
			return nil, err
		}
		if len(loaded) == 0 {
			s.log.Warn(fmt.Sprintf("Website content file %q not found, proceeding without fallback source", s.cfg.Sources.WebsiteFile))
		} else {
			s.log.Info(fmt.Sprintf("Loaded %d website sections from %s", len(loaded), s.cfg.Sources.WebsiteFile))
		}
		docs = append(docs, loaded...)
	}

	return docs, nil
}

// Answer runs the full query path for one question: retrieval, grounded
// synthesis, source previews, and history threading. The caller's history
// slice is never mutated; the returned History is a fresh slice equal to
// history plus this exchange. Remote calls are made exactly once each; the
// caller decides whether to retry.
func (s *Service) Answer(ctx context.Context, question string, history []schema.ConversationTurn) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	s.mu.RLock()
	retrieval := s.retrieval
	s.mu.RUnlock()
	if retrieval == nil {
		return nil, &errs.RetrievalError{Err: fmt.Errorf("index is not initialized")}
	}

	results, err := retrieval.Run(ctx, question, history, s.cfg.Retrieval.TopK)
	if err != nil {
		return nil, err
	}

	text, err := s.qa.Run(ctx, question, history, results)
	if err != nil {
		return nil, err
	}

	answer := &Answer{
		Text:    text,
		History: appendTurn(history, schema.ConversationTurn{Question: question, Answer: text}),
	}
	for _, res := range results {
		answer.UsedChunks = append(answer.UsedChunks, res.Document)
		answer.Sources = append(answer.Sources, preview(res.Document.Text))
	}
	return answer, nil
}

// appendTurn returns history + turn without sharing backing storage with the
// caller's slice.
func appendTurn(history []schema.ConversationTurn, turn schema.ConversationTurn) []schema.ConversationTurn {
	updated := make([]schema.ConversationTurn, 0, len(history)+1)
	updated = append(updated, history...)
	return append(updated, turn)
}

// preview truncates chunk text to the fixed excerpt length, marking the cut
// with an ellipsis.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= sourcePreviewLen {
		return text
	}
	return string(runes[:sourcePreviewLen]) + "..."
}
