package unihan

import "strings"

// Variants records the simplified/traditional variant links of one
// codepoint as listed in Unihan_Variants.txt. Note the inverted semantics:
// a kSimplifiedVariant entry means this character HAS a simplified form and
// therefore IS traditional, and vice versa.
type Variants struct {
	Simplified  []string // codepoints this char simplifies to
	Traditional []string // codepoints this char traditionalizes to
}

// ScriptType is the classification derived from variant links.
type ScriptType string

const (
	ScriptSimplified  ScriptType = "simplified"
	ScriptTraditional ScriptType = "traditional"
	ScriptNeutral     ScriptType = "neutral"
	ScriptAmbiguous   ScriptType = "ambiguous"
	ScriptUnknown     ScriptType = "unknown"
)

// ParseVariants extracts kSimplifiedVariant and kTraditionalVariant
// mappings from Unihan_Variants.txt. Values are space-separated codepoint
// lists; some characters reference themselves.
func ParseVariants(path string) (map[string]Variants, error) {
	variants := make(map[string]Variants)

	err := eachEntry(path, func(codepoint, field, value string) {
		v := variants[codepoint]
		switch field {
		case "kSimplifiedVariant":
			v.Simplified = append(v.Simplified, strings.Fields(value)...)
		case "kTraditionalVariant":
			v.Traditional = append(v.Traditional, strings.Fields(value)...)
		default:
			return
		}
		variants[codepoint] = v
	})
	if err != nil {
		return nil, err
	}

	return variants, nil
}

// Classify determines the script type of a character and its variant list
// (excluding self-references). Characters with links in both directions,
// including self-references, exist in both writing systems and are neutral.
func Classify(char rune, variants map[string]Variants) (ScriptType, []rune) {
	codepoint := CharToCodepoint(char)

	v, ok := variants[codepoint]
	if !ok {
		return ScriptNeutral, nil
	}

	hasSimplifiedSelf := contains(v.Simplified, codepoint)
	hasTraditionalSelf := contains(v.Traditional, codepoint)

	var simplifiedChars, traditionalChars []rune
	for _, code := range v.Simplified {
		if code == codepoint {
			continue
		}
		if c := CodepointToChar(code); c != 0 {
			simplifiedChars = append(simplifiedChars, c)
		}
	}
	for _, code := range v.Traditional {
		if code == codepoint {
			continue
		}
		if c := CodepointToChar(code); c != 0 {
			traditionalChars = append(traditionalChars, c)
		}
	}

	hasSimplifiedForm := hasSimplifiedSelf || len(simplifiedChars) > 0
	hasTraditionalForm := hasTraditionalSelf || len(traditionalChars) > 0

	variantChars := append(simplifiedChars, traditionalChars...)

	switch {
	case hasSimplifiedForm && hasTraditionalForm:
		return ScriptNeutral, variantChars
	case hasSimplifiedForm:
		// Has a simplified variant, so this IS the traditional form.
		return ScriptTraditional, variantChars
	case hasTraditionalForm:
		return ScriptSimplified, variantChars
	default:
		return ScriptNeutral, variantChars
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
