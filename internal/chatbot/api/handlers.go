package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/chatbot"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/errs"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
	"github.com/koushals-sys/Sprypt-chat-bot/pkg/logger"
)

// Chatbot is the slice of the chatbot service the handlers need.
type Chatbot interface {
	Ready() bool
	Answer(ctx context.Context, question string, history []schema.ConversationTurn) (*chatbot.Answer, error)
}

// ChatRequest is the request body of POST /api/chat.
type ChatRequest struct {
	Question    string                    `json:"question"`
	ChatHistory []schema.ConversationTurn `json:"chat_history"`
}

// ChatResponse is the response body of POST /api/chat. ChatHistory echoes
// the request history extended with this exchange so stateless frontends can
// thread conversations.
type ChatResponse struct {
	Answer      string                    `json:"answer"`
	Sources     []string                  `json:"sources"`
	ChatHistory []schema.ConversationTurn `json:"chat_history"`
}

// Handler exposes the chatbot service over HTTP.
type Handler struct {
	service          Chatbot
	cache            *AnswerCache
	apiKeyConfigured bool
	log              *logger.Logger
}

// NewHandler creates a new Handler. cache may be nil.
func NewHandler(service Chatbot, cache *AnswerCache, apiKeyConfigured bool, log *logger.Logger) *Handler {
	return &Handler{
		service:          service,
		cache:            cache,
		apiKeyConfigured: apiKeyConfigured,
		log:              log,
	}
}

// Root reports the API identity and whether the chatbot is ready.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":       "Sprypt.com FAQ Chatbot API",
		"status":        "running",
		"chatbot_ready": h.service.Ready(),
	})
}

// Health is the health-check endpoint.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":              "healthy",
		"chatbot_initialized": h.service.Ready(),
		"api_key_configured":  h.apiKeyConfigured,
	})
}

// Chat accepts a question with optional conversation history and returns the
// grounded answer. Blank questions are rejected here, before any retrieval
// work happens.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question cannot be empty"})
		return
	}

	if !h.service.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chatbot is not initialized. Please check server logs."})
		return
	}

	// Cached answers apply to stateless questions only; a conversation in
	// flight changes what the right answer is.
	if h.cache != nil && len(req.ChatHistory) == 0 {
		if cached, ok := h.cache.Get(c.Request.Context(), req.Question); ok {
			h.log.Debug("Serving answer from cache")
			c.JSON(http.StatusOK, ChatResponse{
				Answer:  cached.Answer,
				Sources: cached.Sources,
				ChatHistory: []schema.ConversationTurn{
					{Question: req.Question, Answer: cached.Answer},
				},
			})
			return
		}
	}

	answer, err := h.service.Answer(c.Request.Context(), req.Question, req.ChatHistory)
	if err != nil {
		status, message := classifyError(err)
		h.log.WithError(err).Error(fmt.Sprintf("Failed to answer question: %v", err))
		c.JSON(status, gin.H{"error": message})
		return
	}

	if h.cache != nil && len(req.ChatHistory) == 0 {
		h.cache.Put(c.Request.Context(), req.Question, answer.Text, answer.Sources)
	}

	c.JSON(http.StatusOK, ChatResponse{
		Answer:      answer.Text,
		Sources:     answer.Sources,
		ChatHistory: answer.History,
	})
}

// classifyError maps the pipeline error taxonomy to an HTTP status and a
// user-visible message. The message derives from the error's tag, never from
// the raw error text.
func classifyError(err error) (int, string) {
	var (
		embErr   *errs.EmbeddingError
		retrErr  *errs.RetrievalError
		synthErr *errs.SynthesisError
	)
	switch {
	case errors.Is(err, chatbot.ErrEmptyQuestion):
		return http.StatusBadRequest, "Question cannot be empty"
	case errors.As(err, &embErr):
		return http.StatusBadGateway, "The embedding service is currently unavailable. Please try again."
	case errors.As(err, &synthErr):
		return http.StatusBadGateway, "The answer service is currently unavailable. Please try again."
	case errors.As(err, &retrErr):
		return http.StatusInternalServerError, "The knowledge base could not be searched. Please try again later."
	default:
		return http.StatusInternalServerError, "An unexpected error occurred while processing your question."
	}
}
