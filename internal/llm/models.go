package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ListModels prints the OpenAI models relevant to the pipeline: chat
// models for translation and refinement, TTS models for the audio
// fallback.
func ListModels(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY or configure it in .hancorpus.yaml")
	}

	client := openai.NewClient(apiKey)
	models, err := client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	var chatModels, ttsModels []string
	for _, model := range models.Models {
		id := model.ID
		switch {
		case strings.Contains(id, "tts") || strings.Contains(id, "audio"):
			ttsModels = append(ttsModels, id)
		case strings.Contains(id, "gpt"):
			chatModels = append(chatModels, id)
		}
	}
	sort.Strings(chatModels)
	sort.Strings(ttsModels)

	fmt.Println("Chat models (translation and pinyin refinement):")
	for _, m := range chatModels {
		fmt.Printf("  %s\n", m)
	}

	fmt.Println("\nText-to-speech models (syllable audio fallback):")
	if len(ttsModels) == 0 {
		fmt.Println("  No TTS models found")
	}
	for _, m := range ttsModels {
		fmt.Printf("  %s\n", m)
	}

	return nil
}
