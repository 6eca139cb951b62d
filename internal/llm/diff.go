package llm

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"codeberg.org/mlutz/hancorpus/internal/pinyin"
	"codeberg.org/mlutz/hancorpus/internal/sentences"
)

// Change is one character whose refined reading differs from the original.
// Before keeps the corpus tone-number form; After is the refined reading
// converted to the same form.
type Change struct {
	Char   string `json:"char"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// SentenceChanges groups the changes of one sentence.
type SentenceChanges struct {
	ID       int      `json:"id"`
	Sentence string   `json:"sentence"`
	Changes  []Change `json:"changes"`
}

// Report summarizes a refinement run against the original corpus.
type Report struct {
	TotalSentences   int               `json:"totalSentences"`
	SentencesChanged int               `json:"sentencesChanged"`
	CharsCompared    int               `json:"charsCompared"`
	CharsChanged     int               `json:"charsChanged"`
	ChangesByChar    map[string]int    `json:"changesByChar"`
	SentenceChanges  []SentenceChanges `json:"sentence_changes"`
	GeneratedAt      string            `json:"generatedAt"`
}

// toTone3 converts a refined tone-mark reading to the corpus tone-number
// form, with no digit on neutral syllables.
func toTone3(s string) string {
	return strings.TrimSuffix(pinyin.MarkToNumber(s), "0")
}

// isChineseToken reports whether a pair token is a single Chinese
// character.
func isChineseToken(token string) bool {
	runes := []rune(token)
	return len(runes) == 1 && sentences.IsChinese(runes[0])
}

// Compare diffs the original corpus against a refinement run. Only
// tone-stripped base differences count as changes; pure tone corrections
// are deliberately excluded since the corpus encodes tones loosely for
// neutral syllables.
func Compare(original []sentences.Sentence, refined *RefineOutput) *Report {
	report := &Report{
		TotalSentences: len(original),
		ChangesByChar:  make(map[string]int),
		GeneratedAt:    time.Now().Format(time.RFC3339),
	}

	refinedByID := make(map[int][]sentences.Pair, len(refined.Sentences))
	for _, rs := range refined.Sentences {
		refinedByID[rs.ID] = sentences.ParsePairs(rs.Pairs)
	}

	for id := range original {
		refinedPairs, ok := refinedByID[id]
		if !ok {
			continue
		}
		originalPairs := sentences.ParsePairs(original[id].Pairs)

		var changes []Change
		n := len(originalPairs)
		if len(refinedPairs) < n {
			n = len(refinedPairs)
		}

		for i := 0; i < n; i++ {
			orig := originalPairs[i]
			ref := refinedPairs[i]

			if orig.Pinyin == "" || !isChineseToken(orig.Token) {
				continue
			}
			report.CharsCompared++

			if pinyin.Normalize(orig.Pinyin) == pinyin.Normalize(ref.Pinyin) {
				continue
			}

			changes = append(changes, Change{
				Char:   orig.Token,
				Before: orig.Pinyin,
				After:  toTone3(ref.Pinyin),
			})
			report.ChangesByChar[orig.Token]++
			report.CharsChanged++
		}

		if len(changes) > 0 {
			report.SentencesChanged++
			report.SentenceChanges = append(report.SentenceChanges, SentenceChanges{
				ID:       id,
				Sentence: original[id].Text,
				Changes:  changes,
			})
		}
	}

	return report
}

// WriteReport saves the comparison report.
func (r *Report) WriteReport(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ReadReport loads a comparison report for the apply stage.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}
