package pinyin

import (
	"regexp"
	"strings"
)

var syllableRe = regexp.MustCompile(`^([a-zü]+?)(\d?)$`)

// ParseTone3 splits a tone3 syllable into base and tone. The base keeps
// whatever ü/v spelling it arrived with; ok is false for strings that are
// not a plain syllable (embedded digits, punctuation, empty).
//
//	ParseTone3("hao3") = ("hao", 3, true)
//	ParseTone3("ma")   = ("ma", 0, true)
func ParseTone3(s string) (base string, tone int, ok bool) {
	m := syllableRe.FindStringSubmatch(s)
	if m == nil {
		return "", 0, false
	}
	base = m[1]
	if m[2] != "" {
		tone = int(m[2][0] - '0')
	}
	return base, tone, true
}

// Canonical rewrites a tone3 syllable with ü as v and an explicit 0 for the
// neutral tone. This is the form used as map keys and audio filenames.
//
//	Canonical("nü3") = "nv3"
//	Canonical("ma")  = "ma0"
func Canonical(s string) string {
	base, tone, ok := ParseTone3(s)
	if !ok {
		return s
	}
	base = strings.ReplaceAll(base, "ü", "v")
	return base + string(rune('0'+tone))
}

// Display rewrites a canonical base back to proper pinyin spelling with ü.
func Display(base string) string {
	return strings.ReplaceAll(base, "v", "ü")
}
