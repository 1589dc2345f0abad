package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/interfaces"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
	"github.com/koushals-sys/Sprypt-chat-bot/pkg/logger"
)

// FallbackAnswer is the fixed response returned when no retrieved chunk is
// relevant to the question. It is a successful answer, not an error: the
// assistant refuses to invent facts and redirects to human support instead.
const FallbackAnswer = "Hmm, I don't have that information in my knowledge base right now. " +
	"But I can direct you to our support team who can help! Check out: https://help.sprypt.com/"

// policy is the fixed behavioral contract placed at the top of every prompt.
// It pins the tone, the grounding rules, and the response-length scaling;
// the implementation cannot verify these mechanically, the model is held to
// them through this text.
const policy = `You are a friendly Sprypt chatbot assistant. Chat naturally with users like a helpful colleague would - be warm, conversational, and personable.

CONVERSATION STYLE:
- For greetings (hi, hello, hey): Respond warmly and briefly, then ask how you can help.
- For simple questions: Give concise, clear answers (2-3 sentences).
- For complex or comparative questions: Provide detailed explanations with specific information from the context.
- Use a friendly, approachable tone and avoid corporate jargon.

The context includes information from:
1. Internal FAQ documents (primary source - most detailed and specific)
2. Sprypt.com website content (fallback source - general information)

CRITICAL RULES:
1. Answer ONLY using the information from the provided context below.
2. Prioritize information from FAQ documents when available; use website content to supplement.
3. If the answer is not in ANY of the provided context, respond exactly with: "` + FallbackAnswer + `"
4. Do NOT make up information or use external knowledge - stick to the context only.

SPECIAL RESPONSES:
- If someone asks about booking or scheduling a demo: point them to https://www.sprypt.com/demo
- If someone needs technical support: point them to https://help.sprypt.com/
- For "thank you": respond warmly and offer further help.`

// QAPipeline generates a grounded answer from a question and the retrieved
// chunks.
type QAPipeline struct {
	llm interfaces.LLM
	log *logger.Logger
}

// NewQAPipeline creates a new QAPipeline.
func NewQAPipeline(llm interfaces.LLM, log *logger.Logger) *QAPipeline {
	return &QAPipeline{llm: llm, log: log}
}

// Run builds the grounded prompt and calls the LLM. With zero retrieved
// chunks there is nothing to ground an answer in, so the fixed fallback is
// returned directly without a model call.
func (p *QAPipeline) Run(ctx context.Context, question string, history []schema.ConversationTurn, results []schema.SearchResult) (string, error) {
	if len(results) == 0 {
		p.log.Info("No relevant context retrieved, returning fallback answer")
		return FallbackAnswer, nil
	}

	prompt := buildPrompt(question, history, results)

	p.log.Debug(fmt.Sprintf("Sending prompt of %d characters to LLM", len(prompt)))
	answer, err := p.llm.Generate(ctx, prompt)
	if err != nil {
		p.log.Error(fmt.Sprintf("LLM failed to generate answer: %v", err))
		return "", err
	}

	return answer, nil
}

// buildPrompt assembles the behavioral policy, the retrieved context, the
// prior conversation turns, and the question into a single prompt.
func buildPrompt(question string, history []schema.ConversationTurn, results []schema.SearchResult) string {
	var sb strings.Builder

	sb.WriteString(policy)
	sb.WriteString("\n\nContext:\n")
	for i, res := range results {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("Context %d:\n%s\n", i+1, res.Document.Text))
	}
	sb.WriteString("---\n")

	if len(history) > 0 {
		sb.WriteString("\nPrevious conversation:\n")
		for _, turn := range history {
			sb.WriteString(fmt.Sprintf("User: %s\nAssistant: %s\n", turn.Question, turn.Answer))
		}
	}

	sb.WriteString(fmt.Sprintf("\nQuestion: %s\n\nAnswer naturally:", question))
	return sb.String()
}
