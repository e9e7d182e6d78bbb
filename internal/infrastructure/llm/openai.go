package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"NewsBuddy/internal/config"
	"NewsBuddy/internal/ports"
)

const systemPrompt = "You are an AI news analyst who writes cohesive daily digests of AI company news."

// OpenAIClient implements ports.DigestClient on the official OpenAI SDK.
type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

var _ ports.DigestClient = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client from configuration.
func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))

	model := openai.ChatModel(cfg.Model)
	if cfg.Model == "" {
		model = openai.ChatModelGPT4oMini
	}

	return &OpenAIClient{client: &client, model: model}
}

// Summarize issues a single chat completion and returns the raw model text.
func (c *OpenAIClient) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}
