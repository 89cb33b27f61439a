// Package fallback answers free-form questions that match no structured
// dialog flow, via a hosted chat-completion API. The system prompt pins the
// model to the bot's structured capabilities so out-of-domain questions are
// refused rather than improvised.
package fallback

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client calls an OpenAI-compatible chat-completion endpoint.
type Client struct {
	api   openai.Client
	model string
}

// Opts holds parameters for creating a Client.
type Opts struct {
	APIKey  string
	BaseURL string // optional, for OpenAI-compatible providers
	Model   string
}

// New creates a Client.
func New(opts Opts) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("fallback: api key is required")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("fallback: model is required")
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	return &Client{
		api:   openai.NewClient(reqOpts...),
		model: opts.Model,
	}, nil
}

// Answer runs one chat completion over the system prompt and user text.
func (c *Client) Answer(ctx context.Context, systemPrompt, userText string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userText),
		},
	})
	if err != nil {
		return "", fmt.Errorf("fallback: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("fallback: chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
