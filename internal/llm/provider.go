// Package llm drives the model-assisted corpus stages: batch translation
// and context-aware pinyin refinement, with checkpointed resume and a diff
// and apply workflow for reviewing what the model changed.
package llm

import "context"

// ChatProvider is a minimal chat completion interface. Implementations
// exist for OpenAI and Gemini.
type ChatProvider interface {
	// Complete sends one user prompt and returns the model's text reply.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name for logs and reports.
	Name() string

	// IsAvailable reports whether the provider is configured.
	IsAvailable() bool
}

// Options configures a provider.
type Options struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Usage accumulates token counts over a run, for cost estimates.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// UsageTracker is implemented by providers that report token usage.
type UsageTracker interface {
	Usage() Usage
}
