// Package export writes the JSON bundles the web app consumes: annotated
// sentences with per-character pinyin and dictionary links, and the
// character dictionary itself.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"codeberg.org/mlutz/hancorpus/internal/charset"
	"codeberg.org/mlutz/hancorpus/internal/sentences"
)

// CharEntry is one rendered character of a sentence. Pinyin and CharID are
// null for punctuation and non-Chinese tokens.
type CharEntry struct {
	Char   string  `json:"char"`
	Pinyin *string `json:"pinyin"`
	CharID *int    `json:"char_id"`
}

// SentenceRecord is one exported sentence.
type SentenceRecord struct {
	ID          int         `json:"id"`
	Sentence    string      `json:"sentence"`
	ScriptType  string      `json:"script_type"`
	HSKLevel    string      `json:"hsk_level,omitempty"`
	Translation string      `json:"translation,omitempty"`
	Chars       []CharEntry `json:"chars"`
}

// SentenceBundle is the sentences.json document.
type SentenceBundle struct {
	Metadata struct {
		TotalSentences int    `json:"totalSentences"`
		FilteredOut    int    `json:"filteredOut"`
		PureChinese    bool   `json:"pureChineseOnly"`
		GeneratedAt    string `json:"generatedAt"`
	} `json:"metadata"`
	Sentences []SentenceRecord `json:"sentences"`
}

// SentenceOptions controls the sentence export.
type SentenceOptions struct {
	Limit           int  // 0 for all
	PureChineseOnly bool // drop sentences containing multi-char tokens
}

// pureChinese reports whether every token is a single character. Multi-char
// tokens are foreign words or numbers kept whole by the annotator.
func pureChinese(pairs []sentences.Pair) bool {
	for _, p := range pairs {
		if len([]rune(p.Token)) > 1 {
			return false
		}
	}
	return true
}

// BuildSentenceBundle converts annotated sentences to the web app format.
// Character IDs come from the dictionary index; sentences without any
// pinyin-bearing token are dropped.
func BuildSentenceBundle(corpus []sentences.Sentence, charIndex map[string]int, opts SentenceOptions) *SentenceBundle {
	bundle := &SentenceBundle{}

	for _, s := range corpus {
		pairs := sentences.ParsePairs(s.Pairs)

		if opts.PureChineseOnly && !pureChinese(pairs) {
			bundle.Metadata.FilteredOut++
			continue
		}

		chars := make([]CharEntry, 0, len(pairs))
		hasChinese := false
		for _, p := range pairs {
			entry := CharEntry{Char: p.Token}
			if p.Pinyin != "" {
				pinyin := p.Pinyin
				entry.Pinyin = &pinyin
				hasChinese = true
			}
			if id, ok := charIndex[p.Token]; ok {
				charID := id
				entry.CharID = &charID
			}
			chars = append(chars, entry)
		}

		if !hasChinese {
			bundle.Metadata.FilteredOut++
			continue
		}

		bundle.Sentences = append(bundle.Sentences, SentenceRecord{
			ID:          len(bundle.Sentences) + 1,
			Sentence:    s.Text,
			ScriptType:  s.ScriptType,
			HSKLevel:    s.HSKLevel,
			Translation: s.Translation,
			Chars:       chars,
		})

		if opts.Limit > 0 && len(bundle.Sentences) >= opts.Limit {
			break
		}
	}

	bundle.Metadata.TotalSentences = len(bundle.Sentences)
	bundle.Metadata.PureChinese = opts.PureChineseOnly
	bundle.Metadata.GeneratedAt = time.Now().Format(time.RFC3339)

	return bundle
}

// CharIndex maps each dictionary character to its record ID.
func CharIndex(records []charset.Record) map[string]int {
	index := make(map[string]int, len(records))
	for _, r := range records {
		index[r.Char] = r.ID
	}
	return index
}

// WriteJSON saves a bundle with indentation, matching what the front end
// checks into its public data directory.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
