package pinyin

import (
	"fmt"
	"regexp"
	"strings"
)

// Reading is one pronunciation of a character, optionally annotated with a
// usage frequency from kHanyuPinlu.
type Reading struct {
	Syllable string // tone-mark form, e.g. "lè"
	Freq     int    // 0 when the source carries no frequency
}

// String renders the reading in the dataset's field format: "lè(283)" with
// frequency, plain "lè" without.
func (r Reading) String() string {
	if r.Freq > 0 {
		return fmt.Sprintf("%s(%d)", r.Syllable, r.Freq)
	}
	return r.Syllable
}

var freqSuffixRe = regexp.MustCompile(`^([^(]+?)(?:\((\d+)\))?$`)

// ParseField parses a pipe-separated readings field such as
// "lè(283)|yuè(54)" or "de|dì". An empty field yields nil.
func ParseField(field string) []Reading {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}

	var readings []Reading
	for _, part := range strings.Split(field, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := freqSuffixRe.FindStringSubmatch(part)
		if m == nil {
			readings = append(readings, Reading{Syllable: part})
			continue
		}
		r := Reading{Syllable: m[1]}
		if m[2] != "" {
			fmt.Sscanf(m[2], "%d", &r.Freq)
		}
		readings = append(readings, r)
	}

	return readings
}

// FormatField renders readings back into the pipe-separated field format.
func FormatField(readings []Reading) string {
	parts := make([]string, 0, len(readings))
	for _, r := range readings {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, "|")
}

// BaseSet returns the normalized base forms of all readings in a field,
// used to decide whether a heteronym alternative is genuinely new.
func BaseSet(field string) map[string]bool {
	set := make(map[string]bool)
	for _, r := range ParseField(field) {
		set[Normalize(r.Syllable)] = true
	}
	return set
}

var (
	digitRe     = regexp.MustCompile(`\d`)
	combiningRe = regexp.MustCompile(`[\x{0300}-\x{036f}]`)
)

// Corrupted reports whether a reading is unusable source noise, with a
// short reason. The Unihan data occasionally leaks dictionary locations
// ("lǔ 74609.020"), combining diacritics (m̀) or raw CJK characters into
// reading fields.
func Corrupted(syllable string) (bool, string) {
	if syllable == "" {
		return false, ""
	}
	if digitRe.MatchString(syllable) {
		return true, "has_numbers"
	}
	if combiningRe.MatchString(syllable) {
		return true, "has_combining_marks"
	}
	if r := []rune(syllable)[0]; r >= 0x4E00 && r <= 0x9FFF {
		return true, "is_cjk_char"
	}
	return false, ""
}
