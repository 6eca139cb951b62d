package tts

import (
	"os"
	"path/filepath"
	"sort"
)

// Coverage reports which required syllables the inventory and the audio
// directory actually cover.
type Coverage struct {
	Checked        int      `json:"checked"`
	MissingEntries []string `json:"missing_entries"` // not in the enumeration
	MissingAudio   []string `json:"missing_audio"`   // enumerated but no file on disk
}

// Complete reports whether nothing is missing.
func (c *Coverage) Complete() bool {
	return len(c.MissingEntries) == 0 && len(c.MissingAudio) == 0
}

// ValidateCoverage checks every required tone-number syllable against the
// enumeration and, when audioDir is non-empty, against the files on disk.
func ValidateCoverage(required map[string]bool, enum *Enumeration, audioDir string) *Coverage {
	lookup := enum.Lookup()
	coverage := &Coverage{}

	keys := make([]string, 0, len(required))
	for s := range required {
		keys = append(keys, s)
	}
	sort.Strings(keys)

	for _, syllable := range keys {
		coverage.Checked++

		entry, ok := lookup[syllable]
		if !ok {
			coverage.MissingEntries = append(coverage.MissingEntries, syllable)
			continue
		}

		if audioDir != "" {
			path := filepath.Join(audioDir, entry.Filename+".ogg")
			if _, err := os.Stat(path); err != nil {
				coverage.MissingAudio = append(coverage.MissingAudio, syllable)
			}
		}
	}

	return coverage
}
