// Package ai – external LLM client.
//
// LLMClient talks to an OpenAI-compatible chat-completions endpoint (the
// deployment default is Groq's). Each call is a single attempt bounded by
// a timeout; retry policy is deliberately absent — on failure the adapter
// falls back to deterministic text instead of spending another call.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// completionTemperature matches the original tuning: high enough that
	// user-facing replies vary between similar reviews.
	completionTemperature = 0.9
	// completionMaxTokens caps each generated field.
	completionMaxTokens = 500
)

// Completer is the single text-generation primitive the adapter consumes:
// one system+user exchange yielding one text block. There are exactly two
// participants in this contract — LLMClient here, and test stubs — the
// deterministic Fallback intentionally sits outside it because it can
// never fail.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// LLMClient is a thin wrapper around the OpenAI-compatible chat API.
type LLMClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewLLMClient constructs a client for the given endpoint and model. The
// timeout bounds every Complete call; values <= 0 default to 10s.
func NewLLMClient(baseURL, apiKey, model string, timeout time.Duration) *LLMClient {
	opts := []option.RequestOption{option.WithBaseURL(baseURL)}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := openai.NewClient(opts...)
	return &LLMClient{client: &client, model: model, timeout: timeout}
}

// Complete issues one chat-completion exchange and returns the generated
// text. It fails on transport errors, non-success statuses, an empty choice
// list, or blank content — callers treat all of these identically.
func (c *LLMClient) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model:       c.model,
		Temperature: openai.Float(completionTemperature),
		MaxTokens:   openai.Int(completionMaxTokens),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("completion returned empty content")
	}
	return out, nil
}
