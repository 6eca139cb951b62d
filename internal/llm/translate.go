package llm

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"codeberg.org/mlutz/hancorpus/internal/sentences"
)

const translateStage = "translate"

// Translator batch-translates the corpus to English. Sentences that
// already carry a translation are skipped, so reruns only fill gaps.
type Translator struct {
	provider   ChatProvider
	checkpoint *Checkpoint
	config     BatchConfig
}

// NewTranslator creates a translator. The checkpoint may be nil.
func NewTranslator(provider ChatProvider, checkpoint *Checkpoint, config BatchConfig) *Translator {
	return &Translator{
		provider:   provider,
		checkpoint: checkpoint,
		config:     config.withDefaults(),
	}
}

// translatePrompt numbers the batch 1..n; the model replies in the same
// numbered format.
func translatePrompt(batch []sentences.Sentence) string {
	var b strings.Builder

	b.WriteString("You are a professional Chinese to English translator. ")
	b.WriteString("Translate each sentence naturally and accurately. ")
	b.WriteString("Keep names as they are. Reply with one numbered line per sentence and nothing else.\n")
	b.WriteString("\n")
	b.WriteString("Translate these Chinese sentences to English:\n")
	b.WriteString("\n")

	for i, s := range batch {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Text)
	}

	return b.String()
}

var numberedLineRe = regexp.MustCompile(`^\d+\.\s*(.+)$`)

// parseTranslateResponse extracts the numbered translations. Unnumbered
// lines fill remaining slots, which tolerates models that drop the
// numbering mid-reply.
func parseTranslateResponse(text string, expected int) ([]string, error) {
	var translations []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := numberedLineRe.FindStringSubmatch(line); m != nil {
			translations = append(translations, strings.TrimSpace(m[1]))
		} else if len(translations) < expected && !strings.HasPrefix(line, "#") {
			translations = append(translations, line)
		}
	}

	if len(translations) != expected {
		return nil, fmt.Errorf("expected %d translations, got %d", expected, len(translations))
	}
	return translations, nil
}

// refusalMarkers flag replies where the model answered about the task
// instead of doing it.
var refusalMarkers = []string{
	"i cannot", "i can't", "i'm sorry", "as an ai",
}

// validateTranslation rejects empty or refusal-shaped output.
func validateTranslation(english string) error {
	if strings.TrimSpace(english) == "" {
		return fmt.Errorf("empty translation")
	}
	lower := strings.ToLower(english)
	for _, marker := range refusalMarkers {
		if strings.Contains(lower, marker) {
			return fmt.Errorf("refusal-like translation: %q", english)
		}
	}
	return nil
}

// Run fills the Translation field of every untranslated sentence in place
// and returns how many translations were produced.
func (t *Translator) Run(ctx context.Context, all []sentences.Sentence) (int, error) {
	if !t.provider.IsAvailable() {
		return 0, fmt.Errorf("%s provider is not configured", t.provider.Name())
	}

	// Restore earlier progress before deciding what still needs work.
	if t.checkpoint != nil {
		results, err := t.checkpoint.Results(translateStage)
		if err != nil {
			return 0, err
		}
		for id, translation := range results {
			if id >= 0 && id < len(all) && all[id].Translation == "" {
				all[id].Translation = translation
			}
		}
	}

	var pending []int
	for i := range all {
		if all[i].Translation == "" && len(sentences.ChineseChars(all[i].Text)) > 0 {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		fmt.Println("All sentences already translated")
		return 0, nil
	}
	fmt.Printf("Translating %d sentences in batches of %d...\n", len(pending), t.config.BatchSize)

	translated := 0

	for i := 0; i < len(pending); i += t.config.BatchSize {
		end := i + t.config.BatchSize
		if end > len(pending) {
			end = len(pending)
		}
		indices := pending[i:end]

		batch := make([]sentences.Sentence, len(indices))
		for j, idx := range indices {
			batch[j] = all[idx]
		}

		reply, err := completeWithRetry(ctx, t.provider, translatePrompt(batch), t.config)
		if err != nil {
			if ctx.Err() != nil {
				return translated, ctx.Err()
			}
			fmt.Fprintf(os.Stderr, "Warning: translation batch failed, leaving sentences untranslated: %v\n", err)
			continue
		}

		translations, err := parseTranslateResponse(reply, len(batch))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: unparseable translation batch: %v\n", err)
			continue
		}

		for j, idx := range indices {
			if err := validateTranslation(translations[j]); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: dropping translation for sentence %d: %v\n", idx, err)
				continue
			}
			all[idx].Translation = translations[j]
			translated++

			if t.checkpoint != nil {
				if err := t.checkpoint.SaveResult(translateStage, idx, translations[j]); err != nil {
					return translated, err
				}
			}
		}

		if (i+t.config.BatchSize)%100 == 0 || end == len(pending) {
			fmt.Printf("  Translated %d of %d...\n", end, len(pending))
		}

		if err := pause(ctx, t.config.RateDelay); err != nil {
			return translated, err
		}
	}

	if tracker, ok := t.provider.(UsageTracker); ok {
		usage := tracker.Usage()
		if usage.PromptTokens > 0 {
			fmt.Printf("Token usage: %d prompt, %d completion\n",
				usage.PromptTokens, usage.CompletionTokens)
		}
	}

	return translated, nil
}
