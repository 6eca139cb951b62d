// Package tts synthesizes per-syllable pronunciation audio. The syllable
// inventory is enumerated from Unihan kMandarin readings; AWS Polly speaks
// each syllable through its pinyin phoneme alphabet, with OpenAI TTS as a
// fallback backend.
package tts

import (
	"context"
	"fmt"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// GenerateAudio synthesizes one syllable, given in tone-number form
	// ("ma3", "lv4", "de0"), and saves it to the specified file
	GenerateAudio(ctx context.Context, syllable string, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider  string // Provider name: "polly" or "openai"
	OutputDir string // Directory for output files

	// Polly-specific settings
	AWSRegion string
	Voice     string // Polly voice id, default Zhiyu
	Engine    string // "neural" or "standard"

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string
	OpenAIVoice string
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:    "polly",
		OutputDir:   "./audio",
		AWSRegion:   "us-east-1",
		Voice:       "Zhiyu",
		Engine:      "neural",
		OpenAIModel: "gpt-4o-mini-tts",
		OpenAIVoice: "alloy",
	}
}

// NewProvider creates the appropriate audio provider based on configuration
func NewProvider(ctx context.Context, config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "polly":
		return NewPollyProvider(ctx, config)
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)
	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// GenerateAudio tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) GenerateAudio(ctx context.Context, syllable string, outputFile string) error {
	err := p.primary.GenerateAudio(ctx, syllable, outputFile)
	if err != nil {
		fmt.Printf("Primary provider (%s) failed: %v. Falling back to %s\n",
			p.primary.Name(), err, p.fallback.Name())
		return p.fallback.GenerateAudio(ctx, syllable, outputFile)
	}
	return nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
