package llms

import (
	"context"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/errs"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/interfaces"
)

// OpenAIChat is a text-generation client for the OpenAI chat completion API.
// The sampling temperature is fixed by configuration; with a non-zero value
// outputs are not byte-for-byte reproducible across calls.
type OpenAIChat struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIChat creates a new OpenAIChat client.
func NewOpenAIChat(apiKey, model string, temperature float32) *OpenAIChat {
	config := openai.DefaultConfig(apiKey)
	client := openai.NewClientWithConfig(config)
	return &OpenAIChat{client: client, model: model, temperature: temperature}
}

// Generate sends the prompt as a single user message and returns the model's
// text. Remote failures surface as a SynthesisError.
func (o *OpenAIChat) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: &o.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &errs.SynthesisError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &errs.SynthesisError{Err: fmt.Errorf("no choices returned")}
	}

	return resp.Choices[0].Message.Content, nil
}

// compile-time check to ensure OpenAIChat implements the LLM interface
var _ interfaces.LLM = (*OpenAIChat)(nil)
