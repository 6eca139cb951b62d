package tts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/mlutz/hancorpus/internal/pinyin"
)

// OpenAIProvider implements Provider with the OpenAI speech API. It is the
// fallback backend for syllables the Polly account cannot synthesize.
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates an OpenAI TTS provider.
func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIProvider{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the API key is set
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

// GenerateAudio speaks one syllable. OpenAI has no pinyin phoneme input,
// so the syllable is spelled out with tone marks and a pronunciation
// instruction carries the Mandarin context.
func (p *OpenAIProvider) GenerateAudio(ctx context.Context, syllable string, outputFile string) error {
	if !syllableRe.MatchString(syllable) {
		return fmt.Errorf("invalid syllable %q: want tone-number form like ma3 or de0", syllable)
	}

	spoken := pinyin.NumberToMark(syllable)

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          spoken,
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		ResponseFormat: openai.SpeechResponseFormatOpus,
	}
	if p.config.OpenAIModel == "gpt-4o-mini-tts" {
		req.Instructions = "You are speaking Mandarin Chinese. Pronounce this single pinyin syllable with its tone, clearly, for language learners."
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		return fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	dir := filepath.Dir(outputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, response)
	if err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if written == 0 {
		return fmt.Errorf("no audio data received from OpenAI")
	}

	return nil
}
