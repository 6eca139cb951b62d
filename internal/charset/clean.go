package charset

import (
	"codeberg.org/mlutz/hancorpus/internal/pinyin"
)

// Removal describes one reading dropped by CleanCorrupted.
type Removal struct {
	Char     string
	Syllable string
	Reason   string
}

// CleanCorrupted removes readings that are not valid pinyin: entries with
// stray digits, combining diacritics that never ligated, or CJK characters
// that leaked in from malformed source lines. Characters left with no valid
// reading keep an empty pinyins field.
func CleanCorrupted(records []Record) []Removal {
	var removals []Removal

	for i := range records {
		readings := pinyin.ParseField(records[i].Pinyins)
		if len(readings) == 0 {
			continue
		}

		kept := readings[:0]
		changed := false
		for _, r := range readings {
			if bad, reason := pinyin.Corrupted(r.Syllable); bad {
				removals = append(removals, Removal{
					Char:     records[i].Char,
					Syllable: r.Syllable,
					Reason:   reason,
				})
				changed = true
				continue
			}
			kept = append(kept, r)
		}

		if changed {
			records[i].Pinyins = pinyin.FormatField(kept)
		}
	}

	return removals
}

// FixToneNumbers rewrites tone-number readings ("hao3") into the dataset's
// tone-mark form ("hǎo"). Readings already in mark form pass through.
func FixToneNumbers(records []Record) int {
	fixed := 0

	for i := range records {
		readings := pinyin.ParseField(records[i].Pinyins)
		changed := false

		for j, r := range readings {
			if pinyin.HasToneNumber(r.Syllable) {
				readings[j].Syllable = pinyin.NumberToMark(r.Syllable)
				changed = true
			}
		}

		if changed {
			records[i].Pinyins = pinyin.FormatField(readings)
			fixed++
		}
	}

	return fixed
}
