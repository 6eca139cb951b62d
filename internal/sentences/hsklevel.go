package sentences

import (
	"codeberg.org/mlutz/hancorpus/internal/hsk"
)

// HSKLevel grades one sentence from its char:pinyin pairs. Any Chinese
// character without an HSK level makes the whole sentence beyond-hsk;
// otherwise the hardest character's level wins. Sentences with no Chinese
// characters get no level.
func HSKLevel(pairsField string, levels map[rune]string) string {
	level := ""
	hasChinese := false

	for _, p := range ParsePairs(pairsField) {
		runes := []rune(p.Token)
		if len(runes) != 1 || !IsChinese(runes[0]) {
			continue
		}
		hasChinese = true

		charLevel, ok := levels[runes[0]]
		if !ok || charLevel == "" {
			return hsk.BeyondHSK
		}
		level = hsk.Max(level, charLevel)
	}

	if !hasChinese {
		return ""
	}
	return level
}

// GradeAll assigns sentence HSK levels in place and returns the
// distribution, keyed by level label.
func GradeAll(all []Sentence, levels map[rune]string) map[string]int {
	distribution := make(map[string]int)
	for i := range all {
		all[i].HSKLevel = HSKLevel(all[i].Pairs, levels)
		if all[i].HSKLevel != "" {
			distribution[all[i].HSKLevel]++
		}
	}
	return distribution
}
