package sentences

// Script type labels for whole sentences.
const (
	ScriptSimplified  = "simplified"
	ScriptTraditional = "traditional"
	ScriptNeutral     = "neutral"
	ScriptAmbiguous   = "ambiguous"
	ScriptUnknown     = "unknown"
)

// ClassifyScript determines a sentence's script type from the script types
// of its characters:
//
//   - any ambiguous character, or a simplified/traditional mix: ambiguous
//   - only neutral characters: neutral
//   - neutral plus simplified: simplified, and likewise for traditional
//   - no Chinese characters, or only unclassified ones: unknown
//
// The counts of each character script type are returned alongside the
// label for distribution reporting.
func ClassifyScript(text string, scripts map[rune]string) (string, map[string]int) {
	chars := ChineseChars(text)
	if len(chars) == 0 {
		return ScriptUnknown, nil
	}

	counts := make(map[string]int)
	for _, c := range chars {
		script, ok := scripts[c]
		if !ok {
			script = ScriptUnknown
		}
		counts[script]++
	}

	hasSimplified := counts[ScriptSimplified] > 0
	hasTraditional := counts[ScriptTraditional] > 0

	switch {
	case counts[ScriptAmbiguous] > 0:
		return ScriptAmbiguous, counts
	case hasSimplified && hasTraditional:
		return ScriptAmbiguous, counts
	case hasSimplified:
		return ScriptSimplified, counts
	case hasTraditional:
		return ScriptTraditional, counts
	case counts[ScriptNeutral] > 0:
		return ScriptNeutral, counts
	default:
		return ScriptUnknown, counts
	}
}

// ClassifyAll labels every sentence in place and returns the distribution.
func ClassifyAll(all []Sentence, scripts map[rune]string) map[string]int {
	distribution := make(map[string]int)
	for i := range all {
		script, _ := ClassifyScript(all[i].Text, scripts)
		all[i].ScriptType = script
		distribution[script]++
	}
	return distribution
}
