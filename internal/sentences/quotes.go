package sentences

import "strings"

// quoteChars covers ASCII, typographic, and CJK corner quotes.
var quoteChars = []string{`"`, "“", "”", "'", "‘", "’", "「", "」", "『", "』"}

func hasQuotes(text string) bool {
	for _, q := range quoteChars {
		if strings.Contains(text, q) {
			return true
		}
	}
	return false
}

// FixTranslationQuotes strips surrounding double quotes from a translation
// when the Chinese sentence itself has none. Models sometimes quote whole
// translations for CSV safety, which is not real punctuation.
func FixTranslationQuotes(chinese, english string) string {
	if len(english) < 2 || !strings.HasPrefix(english, `"`) || !strings.HasSuffix(english, `"`) {
		return english
	}
	if hasQuotes(chinese) {
		return english
	}
	return english[1 : len(english)-1]
}

// FixAllQuotes repairs every translation in place and returns how many
// changed.
func FixAllQuotes(all []Sentence) int {
	fixed := 0
	for i := range all {
		if all[i].Translation == "" {
			continue
		}
		repaired := FixTranslationQuotes(all[i].Text, all[i].Translation)
		if repaired != all[i].Translation {
			all[i].Translation = repaired
			fixed++
		}
	}
	return fixed
}
