package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"codeberg.org/mlutz/hancorpus/internal/sentences"
)

const refineStage = "refine"

// RefineItem is one sentence going through pinyin refinement. ID is the
// sentence's position in the corpus.
type RefineItem struct {
	ID    int              `json:"id"`
	Text  string           `json:"sentence"`
	Pairs []sentences.Pair `json:"-"`
	Raw   string           `json:"raw,omitempty"`
}

// refinePayload is the per-sentence checkpoint payload.
type refinePayload struct {
	Pairs string `json:"pairs"`
	Raw   string `json:"raw,omitempty"`
}

// FailedBatch records a batch that kept its original pinyin after all
// retries failed.
type FailedBatch struct {
	StartID int    `json:"start_id"`
	EndID   int    `json:"end_id"`
	Error   string `json:"error"`
}

// Refiner reworks per-character pinyin with a chat model that sees the
// whole sentence, fixing readings the per-character converter cannot
// disambiguate.
type Refiner struct {
	provider   ChatProvider
	checkpoint *Checkpoint
	config     BatchConfig
}

// NewRefiner creates a refiner. The checkpoint may be nil for small test
// runs without resume.
func NewRefiner(provider ChatProvider, checkpoint *Checkpoint, config BatchConfig) *Refiner {
	return &Refiner{
		provider:   provider,
		checkpoint: checkpoint,
		config:     config.withDefaults(),
	}
}

// refinePrompt builds the batch prompt. The model returns one line per
// sentence, space-separated, with non-Chinese tokens preserved verbatim.
func refinePrompt(batch []RefineItem) string {
	var b strings.Builder

	b.WriteString("For each Chinese sentence below, provide the natural, context-appropriate pinyin with tone marks (ā, á, ǎ, à).\n")
	b.WriteString("\n")
	b.WriteString("CRITICAL RULES:\n")
	b.WriteString("- Chinese characters: convert to pinyin with tone marks, ONE SYLLABLE PER CHARACTER\n")
	b.WriteString("- Multi-character words: separate each character's pinyin (唯一 is wéi yī, NOT wéiyī)\n")
	b.WriteString("- Numbers: preserve EXACTLY as they appear (6, 18, ６, １８)\n")
	b.WriteString("- Punctuation: preserve EXACTLY as it appears (，, 。, ！, ?, \", etc.)\n")
	b.WriteString("- English names: preserve EXACTLY (Tom, Jim, Muiriel, Ann, etc.)\n")
	b.WriteString("- Chinese transliterations of names (罗杰斯, 史密斯): convert to pinyin\n")
	b.WriteString("- Separate all tokens with single spaces\n")
	b.WriteString("\n")
	b.WriteString("Output format:\n")
	b.WriteString("[sentence_id]: [pinyin mixed with preserved non-Chinese]\n")
	b.WriteString("\n")
	b.WriteString("Example:\n")
	b.WriteString("Input: 123: 今天是6月18号，Tom说\"你好\"！\n")
	b.WriteString("Output: 123: jīn tiān shì 6 yuè 18 hào ， Tom shuō \" nǐ hǎo \" ！\n")
	b.WriteString("\n")
	b.WriteString("Sentences:\n")

	for _, item := range batch {
		fmt.Fprintf(&b, "%d: %s\n", item.ID, item.Text)
	}

	return b.String()
}

// parseRefineResponse maps sentence ids to their pinyin tokens. Malformed
// lines are skipped; the caller treats missing ids as unrefined.
func parseRefineResponse(text string) map[int][]string {
	tokens := make(map[int][]string)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		idPart, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(idPart))
		if err != nil {
			continue
		}
		tokens[id] = strings.Fields(strings.TrimSpace(rest))
	}

	return tokens
}

// alignTokens walks the model's tokens against the original pairs. A token
// equal to the original character is a preserved non-Chinese element;
// anything else is taken as that character's refined pinyin.
func alignTokens(pairs []sentences.Pair, tokens []string) []sentences.Pair {
	aligned := make([]sentences.Pair, len(pairs))
	copy(aligned, pairs)

	i := 0
	for _, token := range tokens {
		if i >= len(aligned) {
			break
		}
		if token != aligned[i].Token {
			aligned[i].Pinyin = token
		}
		i++
	}

	return aligned
}

// Run refines every item, resuming from the checkpoint when one is set.
// Failed batches keep their original pinyin so the output stays complete.
func (r *Refiner) Run(ctx context.Context, items []RefineItem) ([]FailedBatch, error) {
	if !r.provider.IsAvailable() {
		return nil, fmt.Errorf("%s provider is not configured", r.provider.Name())
	}

	start := 0
	if r.checkpoint != nil {
		var err error
		start, err = r.checkpoint.NextIndex(refineStage)
		if err != nil {
			return nil, err
		}
		if start > 0 {
			fmt.Printf("Resuming from checkpoint: %d sentences already processed\n", start)
		}
	}

	var failed []FailedBatch
	processed := start

	for i := start; i < len(items); i += r.config.BatchSize {
		end := i + r.config.BatchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[i:end]

		reply, err := completeWithRetry(ctx, r.provider, refinePrompt(batch), r.config)
		if err != nil {
			if ctx.Err() != nil {
				return failed, ctx.Err()
			}
			fmt.Fprintf(os.Stderr, "Warning: batch %d-%d failed, keeping original pinyin: %v\n",
				batch[0].ID, batch[len(batch)-1].ID, err)
			failed = append(failed, FailedBatch{
				StartID: batch[0].ID,
				EndID:   batch[len(batch)-1].ID,
				Error:   err.Error(),
			})
		} else {
			tokens := parseRefineResponse(reply)
			for j := range batch {
				if t, ok := tokens[batch[j].ID]; ok {
					batch[j].Pairs = alignTokens(batch[j].Pairs, t)
					batch[j].Raw = strings.Join(t, " ")
				}
			}
		}

		if r.checkpoint != nil {
			for _, item := range batch {
				payload, err := json.Marshal(refinePayload{
					Pairs: sentences.FormatPairs(item.Pairs),
					Raw:   item.Raw,
				})
				if err != nil {
					return failed, fmt.Errorf("failed to marshal payload: %w", err)
				}
				if err := r.checkpoint.SaveResult(refineStage, item.ID, string(payload)); err != nil {
					return failed, err
				}
			}
			processed = end
			if err := r.checkpoint.SetNextIndex(refineStage, processed); err != nil {
				return failed, err
			}
		}

		if end%100 == 0 || end == len(items) {
			fmt.Printf("  Processed %d sentences...\n", end)
		}

		if err := pause(ctx, r.config.RateDelay); err != nil {
			return failed, err
		}
	}

	// Fold checkpointed results from this and earlier runs back into the
	// items so the caller sees the complete output.
	if r.checkpoint != nil {
		results, err := r.checkpoint.Results(refineStage)
		if err != nil {
			return failed, err
		}
		for i := range items {
			raw, ok := results[items[i].ID]
			if !ok {
				continue
			}
			var payload refinePayload
			if err := json.Unmarshal([]byte(raw), &payload); err != nil {
				return failed, fmt.Errorf("corrupt checkpoint payload for id %d: %w", items[i].ID, err)
			}
			items[i].Pairs = sentences.ParsePairs(payload.Pairs)
			items[i].Raw = payload.Raw
		}
	}

	if tracker, ok := r.provider.(UsageTracker); ok {
		usage := tracker.Usage()
		if usage.PromptTokens > 0 {
			fmt.Printf("Token usage: %d prompt, %d completion\n",
				usage.PromptTokens, usage.CompletionTokens)
		}
	}

	return failed, nil
}

// RefineOutput is the JSON document written after a refinement run.
type RefineOutput struct {
	Metadata struct {
		TotalSentences int           `json:"totalSentences"`
		GeneratedAt    string        `json:"generatedAt"`
		Source         string        `json:"source"`
		FailedBatches  []FailedBatch `json:"failedBatches,omitempty"`
	} `json:"metadata"`
	Sentences []RefinedSentence `json:"sentences"`
}

// RefinedSentence is one sentence in the refinement output.
type RefinedSentence struct {
	ID       int    `json:"id"`
	Sentence string `json:"sentence"`
	Pairs    string `json:"char_pinyin_pairs"`
	Raw      string `json:"raw,omitempty"`
}

// WriteRefineOutput saves the refined corpus for the diff stage.
func WriteRefineOutput(path, source string, items []RefineItem, failed []FailedBatch) error {
	var out RefineOutput
	out.Metadata.TotalSentences = len(items)
	out.Metadata.GeneratedAt = time.Now().Format(time.RFC3339)
	out.Metadata.Source = source
	out.Metadata.FailedBatches = failed

	out.Sentences = make([]RefinedSentence, len(items))
	for i, item := range items {
		out.Sentences[i] = RefinedSentence{
			ID:       item.ID,
			Sentence: item.Text,
			Pairs:    sentences.FormatPairs(item.Pairs),
			Raw:      item.Raw,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal refinement output: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write refinement output: %w", err)
	}
	return nil
}

// ReadRefineOutput loads a refinement run for comparison.
func ReadRefineOutput(path string) (*RefineOutput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read refinement output: %w", err)
	}
	var out RefineOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse refinement output: %w", err)
	}
	return &out, nil
}
