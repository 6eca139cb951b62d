package pinyin

import (
	"regexp"
	"strings"
)

// toneMarks maps each tone-marked vowel to its base vowel and tone number.
var toneMarks = map[rune]struct {
	base rune
	tone int
}{
	'ā': {'a', 1}, 'á': {'a', 2}, 'ǎ': {'a', 3}, 'à': {'a', 4},
	'ē': {'e', 1}, 'é': {'e', 2}, 'ě': {'e', 3}, 'è': {'e', 4},
	'ī': {'i', 1}, 'í': {'i', 2}, 'ǐ': {'i', 3}, 'ì': {'i', 4},
	'ō': {'o', 1}, 'ó': {'o', 2}, 'ǒ': {'o', 3}, 'ò': {'o', 4},
	'ū': {'u', 1}, 'ú': {'u', 2}, 'ǔ': {'u', 3}, 'ù': {'u', 4},
	'ǖ': {'ü', 1}, 'ǘ': {'ü', 2}, 'ǚ': {'ü', 3}, 'ǜ': {'ü', 4},
}

// markForTone maps a base vowel and tone number back to the marked vowel.
var markForTone = map[rune][5]rune{
	'a': {'a', 'ā', 'á', 'ǎ', 'à'},
	'e': {'e', 'ē', 'é', 'ě', 'è'},
	'i': {'i', 'ī', 'í', 'ǐ', 'ì'},
	'o': {'o', 'ō', 'ó', 'ǒ', 'ò'},
	'u': {'u', 'ū', 'ú', 'ǔ', 'ù'},
	'ü': {'ü', 'ǖ', 'ǘ', 'ǚ', 'ǜ'},
	'v': {'v', 'ǖ', 'ǘ', 'ǚ', 'ǜ'},
}

// SplitToneMark separates a tone-marked syllable into its base form and tone
// number. Neutral-tone syllables return tone 0.
//
//	SplitToneMark("yī")  = ("yi", 1)
//	SplitToneMark("hǎo") = ("hao", 3)
//	SplitToneMark("ma")  = ("ma", 0)
func SplitToneMark(syllable string) (string, int) {
	var sb strings.Builder
	tone := 0

	for _, r := range syllable {
		if m, ok := toneMarks[r]; ok {
			sb.WriteRune(m.base)
			tone = m.tone
		} else {
			sb.WriteRune(r)
		}
	}

	return sb.String(), tone
}

// MarkToNumber converts a tone-marked syllable to tone3 format with ü
// rewritten as v. Neutral tones get an explicit 0 suffix, which the audio
// pipeline requires for AWS Polly phoneme tags and filenames.
//
//	MarkToNumber("nǚ") = "nv3"
//	MarkToNumber("ma") = "ma0"
func MarkToNumber(syllable string) string {
	base, tone := SplitToneMark(syllable)
	base = strings.ReplaceAll(base, "ü", "v")
	return base + string(rune('0'+tone))
}

var tone3Re = regexp.MustCompile(`^([a-zü]+?)([0-5]?)$`)

// NumberToMark converts a tone3 syllable back to tone-mark format, placing
// the mark per standard pinyin rules: a/o first, then e, then the second
// vowel of iu/ui, then any remaining i/u/ü.
//
//	NumberToMark("tong2") = "tóng"
//	NumberToMark("lv4")   = "lǜ"
//	NumberToMark("de")    = "de"
func NumberToMark(syllable string) string {
	m := tone3Re.FindStringSubmatch(syllable)
	if m == nil {
		return syllable
	}

	base := m[1]
	if m[2] == "" || m[2] == "0" || m[2] == "5" {
		// Neutral tone carries no mark.
		return strings.ReplaceAll(base, "v", "ü")
	}
	tone := int(m[2][0] - '0')

	chars := []rune(base)
	idx := toneVowelIndex(chars)
	if idx >= 0 {
		if marks, ok := markForTone[chars[idx]]; ok {
			chars[idx] = marks[tone]
		}
	}

	out := string(chars)
	return strings.ReplaceAll(out, "v", "ü")
}

// toneVowelIndex finds the vowel that receives the tone mark.
func toneVowelIndex(chars []rune) int {
	for i, c := range chars {
		if c == 'a' || c == 'o' {
			return i
		}
	}
	for i, c := range chars {
		if c == 'e' {
			return i
		}
	}
	for i := 0; i < len(chars)-1; i++ {
		if (chars[i] == 'i' || chars[i] == 'u') && (chars[i+1] == 'i' || chars[i+1] == 'u') {
			return i + 1
		}
	}
	for i, c := range chars {
		if c == 'i' || c == 'u' || c == 'ü' || c == 'v' {
			return i
		}
	}
	return -1
}

// HasToneNumber reports whether the syllable ends with an explicit tone
// digit 1-4.
func HasToneNumber(syllable string) bool {
	if syllable == "" {
		return false
	}
	last := syllable[len(syllable)-1]
	return last >= '1' && last <= '4'
}

var toneDigitRe = regexp.MustCompile(`[1-5]`)

// Normalize reduces a syllable in either encoding to its bare base form:
// lowercase, no tone marks, no tone digits, ü as v. Two readings are the
// same pronunciation modulo tone iff their normalized forms are equal.
//
//	Normalize("shéi")  = "shei"
//	Normalize("shei2") = "shei"
func Normalize(syllable string) string {
	s := strings.ToLower(strings.TrimSpace(syllable))
	s = toneDigitRe.ReplaceAllString(s, "")
	base, _ := SplitToneMark(s)
	return strings.ReplaceAll(base, "ü", "v")
}
