package export

import (
	"strings"
	"time"

	"codeberg.org/mlutz/hancorpus/internal/charset"
	"codeberg.org/mlutz/hancorpus/internal/pinyin"
)

// CharacterRecord is one exported dictionary entry with the pinyin field
// split into individual readings.
type CharacterRecord struct {
	ID         int      `json:"id"`
	Char       string   `json:"char"`
	Codepoint  string   `json:"codepoint"`
	Pinyins    []string `json:"pinyins"`
	ScriptType string   `json:"script_type"`
	Variants   string   `json:"variants,omitempty"`
	GlossEN    string   `json:"gloss_en,omitempty"`
	Examples   []string `json:"examples,omitempty"`
	HSKLevel   string   `json:"hsk_level,omitempty"`
}

// CharacterBundle is the characters.json document.
type CharacterBundle struct {
	Metadata struct {
		TotalCharacters int    `json:"totalCharacters"`
		WithPinyin      int    `json:"withPinyin"`
		WithHSKLevel    int    `json:"withHskLevel"`
		GeneratedAt     string `json:"generatedAt"`
	} `json:"metadata"`
	Characters []CharacterRecord `json:"characters"`
}

// BuildCharacterBundle converts dictionary records to the web app format.
// Records without any reading are kept, so the front end can still render
// rare characters it encounters.
func BuildCharacterBundle(records []charset.Record) *CharacterBundle {
	bundle := &CharacterBundle{
		Characters: make([]CharacterRecord, 0, len(records)),
	}

	for _, r := range records {
		var pinyins []string
		for _, reading := range pinyin.ParseField(r.Pinyins) {
			pinyins = append(pinyins, reading.Syllable)
		}

		var examples []string
		if r.Examples != "" {
			examples = strings.Split(r.Examples, "|")
		}

		if len(pinyins) > 0 {
			bundle.Metadata.WithPinyin++
		}
		if r.HSKLevel != "" {
			bundle.Metadata.WithHSKLevel++
		}

		bundle.Characters = append(bundle.Characters, CharacterRecord{
			ID:         r.ID,
			Char:       r.Char,
			Codepoint:  r.Codepoint,
			Pinyins:    pinyins,
			ScriptType: r.ScriptType,
			Variants:   r.Variants,
			GlossEN:    r.GlossEN,
			Examples:   examples,
			HSKLevel:   r.HSKLevel,
		})
	}

	bundle.Metadata.TotalCharacters = len(bundle.Characters)
	bundle.Metadata.GeneratedAt = time.Now().Format(time.RFC3339)

	return bundle
}
