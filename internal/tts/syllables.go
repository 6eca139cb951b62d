package tts

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"codeberg.org/mlutz/hancorpus/internal/pinyin"
	"codeberg.org/mlutz/hancorpus/internal/sentences"
	"codeberg.org/mlutz/hancorpus/internal/unihan"
)

// Syllable is one entry of the audio inventory. PinyinTone3 is the
// canonical key and filename stem: tone-number form with v for ü and an
// explicit 0 on neutral syllables.
type Syllable struct {
	Base            string `json:"base"`        // canonical base, v form
	BaseProper      string `json:"base_proper"` // display base, ü form
	Tone            int    `json:"tone"`        // 0 for neutral
	PinyinTone3     string `json:"pinyin_tone3"`
	Filename        string `json:"filename"` // stem only, extension added by the generator
	ExistsInDataset bool   `json:"exists_in_dataset"`
}

// Enumeration is the syllable inventory document.
type Enumeration struct {
	Metadata struct {
		TotalSyllables int     `json:"total_syllables"`
		UsedInDataset  int     `json:"used_in_dataset"`
		CoveragePct    float64 `json:"coverage_percent"`
		GeneratedAt    string  `json:"generatedAt"`
		Source         string  `json:"source"`
	} `json:"metadata"`
	Syllables []Syllable `json:"syllables"`
}

// DatasetSyllables collects every tone-number syllable used in the
// sentence corpus, adding the explicit 0 to neutral readings.
func DatasetSyllables(corpus []sentences.Sentence) map[string]bool {
	used := make(map[string]bool)

	for _, s := range corpus {
		for _, p := range sentences.ParsePairs(s.Pairs) {
			if p.Pinyin == "" {
				continue
			}
			used[pinyin.Canonical(p.Pinyin)] = true
		}
	}

	return used
}

// Enumerate builds the inventory from Unihan kMandarin readings, marking
// which syllables the corpus actually uses.
func Enumerate(unihanReadingsPath string, datasetSyllables map[string]bool) (*Enumeration, error) {
	marked, err := unihan.MandarinSyllables(unihanReadingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate syllables: %w", err)
	}

	byKey := make(map[string]Syllable)
	for syllable := range marked {
		tone3 := pinyin.MarkToNumber(syllable)

		base, tone, ok := pinyin.ParseTone3(tone3)
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: could not parse syllable %q, skipping\n", syllable)
			continue
		}
		if _, seen := byKey[tone3]; seen {
			continue
		}

		byKey[tone3] = Syllable{
			Base:            base,
			BaseProper:      pinyin.Display(base),
			Tone:            tone,
			PinyinTone3:     tone3,
			Filename:        tone3,
			ExistsInDataset: datasetSyllables[tone3],
		}
	}

	// Dataset syllables Unihan does not list, usually readings the LLM
	// refinement introduced, still need audio.
	for tone3 := range datasetSyllables {
		if _, seen := byKey[tone3]; seen {
			continue
		}
		base, tone, ok := pinyin.ParseTone3(tone3)
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: could not parse dataset syllable %q, skipping\n", tone3)
			continue
		}
		byKey[tone3] = Syllable{
			Base:            base,
			BaseProper:      pinyin.Display(base),
			Tone:            tone,
			PinyinTone3:     tone3,
			Filename:        tone3,
			ExistsInDataset: true,
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var enum Enumeration
	enum.Syllables = make([]Syllable, 0, len(keys))
	used := 0
	for _, k := range keys {
		s := byKey[k]
		if s.ExistsInDataset {
			used++
		}
		enum.Syllables = append(enum.Syllables, s)
	}

	enum.Metadata.TotalSyllables = len(enum.Syllables)
	enum.Metadata.UsedInDataset = used
	if len(enum.Syllables) > 0 {
		enum.Metadata.CoveragePct = float64(used) / float64(len(enum.Syllables)) * 100
	}
	enum.Metadata.GeneratedAt = time.Now().Format(time.RFC3339)
	enum.Metadata.Source = "unihan-kmandarin"

	return &enum, nil
}

// Lookup returns the inventory keyed by tone-number syllable.
func (e *Enumeration) Lookup() map[string]Syllable {
	m := make(map[string]Syllable, len(e.Syllables))
	for _, s := range e.Syllables {
		m[s.PinyinTone3] = s
	}
	return m
}

// WriteJSON saves the enumeration.
func (e *Enumeration) WriteJSON(path string) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal enumeration: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write enumeration: %w", err)
	}
	return nil
}

// ReadEnumeration loads a previously written inventory.
func ReadEnumeration(path string) (*Enumeration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read enumeration: %w", err)
	}
	var enum Enumeration
	if err := json.Unmarshal(data, &enum); err != nil {
		return nil, fmt.Errorf("failed to parse enumeration: %w", err)
	}
	return &enum, nil
}
