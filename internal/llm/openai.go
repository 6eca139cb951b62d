package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements ChatProvider with the OpenAI chat API.
type OpenAIProvider struct {
	apiKey  string
	client  *openai.Client
	options Options
	usage   Usage
}

// NewOpenAIProvider creates an OpenAI-backed provider. The default model is
// gpt-4o-mini with deterministic output.
func NewOpenAIProvider(options Options) *OpenAIProvider {
	if options.Model == "" {
		options.Model = openai.GPT4oMini
	}
	return &OpenAIProvider{
		apiKey:  options.APIKey,
		client:  openai.NewClient(options.APIKey),
		options: options,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the API key is set
func (p *OpenAIProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// Complete sends the prompt as a single user message.
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}

	req := openai.ChatCompletionRequest{
		Model: p.options.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: p.options.Temperature,
	}
	if p.options.MaxTokens > 0 {
		req.MaxTokens = p.options.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	p.usage.PromptTokens += resp.Usage.PromptTokens
	p.usage.CompletionTokens += resp.Usage.CompletionTokens

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Usage returns the accumulated token counts.
func (p *OpenAIProvider) Usage() Usage {
	return p.usage
}
