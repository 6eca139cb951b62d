package charset

import (
	"fmt"
	"strings"

	gopinyin "github.com/mozillazg/go-pinyin"

	"codeberg.org/mlutz/hancorpus/internal/cedict"
	"codeberg.org/mlutz/hancorpus/internal/hsk"
	"codeberg.org/mlutz/hancorpus/internal/pinyin"
	"codeberg.org/mlutz/hancorpus/internal/unihan"
)

// CJK Unified Ideographs, the dataset's base range.
const (
	baseRangeStart = 0x4E00
	baseRangeEnd   = 0x9FFF
)

// SourcePaths locates the raw source files the build consumes.
type SourcePaths struct {
	UnihanReadings string
	UnihanVariants string
	CEDICT         string
	HSKCharlist    string
}

// BuildBase creates the initial dataset: every character in the CJK
// Unified Ideographs block, sequentially numbered, all other fields empty.
func BuildBase() []Record {
	records := make([]Record, 0, baseRangeEnd-baseRangeStart+1)
	for code := baseRangeStart; code <= baseRangeEnd; code++ {
		r := rune(code)
		records = append(records, Record{
			ID:        len(records) + 1,
			Char:      string(r),
			Codepoint: unihan.CharToCodepoint(r),
		})
	}
	return records
}

// AddReadings fills the pinyins column from Unihan_Readings.txt.
func AddReadings(records []Record, path string) (int, error) {
	readings, err := unihan.ParseReadings(path)
	if err != nil {
		return 0, err
	}

	filled := 0
	for i := range records {
		if r, ok := readings[records[i].Codepoint]; ok {
			records[i].Pinyins = r.Field()
			filled++
		}
	}
	return filled, nil
}

// AddGlosses fills glosses and example compounds from CC-CEDICT. Each
// character gets the primary gloss of its first single-character entry,
// looked up under both the traditional and simplified headword, and up to
// maxExamples compound words containing it.
func AddGlosses(records []Record, path string, maxExamples int) (int, error) {
	entries, err := cedict.Parse(path)
	if err != nil {
		return 0, err
	}
	idx := cedict.NewIndex(entries)

	filled := 0
	for i := range records {
		char := []rune(records[i].Char)[0]

		if gloss := idx.Gloss(char); gloss != "" {
			records[i].GlossEN = gloss
			filled++
		}
		if examples := idx.Examples(char, maxExamples); len(examples) > 0 {
			records[i].Examples = strings.Join(examples, "|")
		}
	}
	return filled, nil
}

// AddVariants classifies every character's script type from
// Unihan_Variants.txt and records its variant characters.
func AddVariants(records []Record, path string) (map[unihan.ScriptType]int, error) {
	variants, err := unihan.ParseVariants(path)
	if err != nil {
		return nil, err
	}

	counts := make(map[unihan.ScriptType]int)
	for i := range records {
		char := []rune(records[i].Char)[0]
		script, variantChars := unihan.Classify(char, variants)
		records[i].ScriptType = string(script)

		parts := make([]string, len(variantChars))
		for j, v := range variantChars {
			parts[j] = string(v)
		}
		records[i].Variants = strings.Join(parts, "|")

		counts[script]++
	}
	return counts, nil
}

// AddHSKLevels assigns HSK 3.0 levels from the charlist, then propagates
// them across script variants so that both forms of a character share a
// level. Conflicting propagated levels resolve to the easier one.
func AddHSKLevels(records []Record, path string) (direct, propagated int, err error) {
	levels, err := hsk.ParseCharlist(path)
	if err != nil {
		return 0, 0, err
	}

	variantMap := make(map[rune][]rune)
	for _, r := range records {
		char := []rune(r.Char)[0]
		for _, part := range strings.Split(r.Variants, "|") {
			if part == "" {
				continue
			}
			v := []rune(part)[0]
			variantMap[char] = append(variantMap[char], v)
			variantMap[v] = append(variantMap[v], char)
		}
	}

	direct = 0
	for _, r := range records {
		if _, ok := levels[[]rune(r.Char)[0]]; ok {
			direct++
		}
	}

	propagated = hsk.Propagate(levels, variantMap)

	for i := range records {
		if level, ok := levels[[]rune(records[i].Char)[0]]; ok {
			records[i].HSKLevel = level
		}
	}
	return direct, propagated, nil
}

// AddHeteronyms enriches the pinyins column with additional readings known
// to the go-pinyin dictionary. A reading is appended only when its
// tone-stripped base is not already present in the field.
func AddHeteronyms(records []Record) int {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone
	args.Heteronym = true

	enriched := 0
	for i := range records {
		char := []rune(records[i].Char)[0]

		candidates := gopinyin.SinglePinyin(char, args)
		if len(candidates) == 0 {
			continue
		}

		bases := pinyin.BaseSet(records[i].Pinyins)
		readings := pinyin.ParseField(records[i].Pinyins)
		added := false

		for _, c := range candidates {
			base := pinyin.Normalize(c)
			if base == "" || bases[base] {
				continue
			}
			bases[base] = true
			readings = append(readings, pinyin.Reading{Syllable: c})
			added = true
		}

		if added {
			records[i].Pinyins = pinyin.FormatField(readings)
			enriched++
		}
	}
	return enriched
}

// Build runs the whole pipeline and reports per-step progress.
func Build(paths SourcePaths, maxExamples int) ([]Record, error) {
	fmt.Println("Step 1: building base character range")
	records := BuildBase()
	fmt.Printf("  %d characters\n", len(records))

	fmt.Println("Step 2: adding Unihan readings")
	filled, err := AddReadings(records, paths.UnihanReadings)
	if err != nil {
		return nil, fmt.Errorf("readings step failed: %w", err)
	}
	fmt.Printf("  %d characters with readings\n", filled)

	fmt.Println("Step 3: adding CC-CEDICT glosses and examples")
	filled, err = AddGlosses(records, paths.CEDICT, maxExamples)
	if err != nil {
		return nil, fmt.Errorf("gloss step failed: %w", err)
	}
	fmt.Printf("  %d characters with glosses\n", filled)

	fmt.Println("Step 4: classifying script types")
	counts, err := AddVariants(records, paths.UnihanVariants)
	if err != nil {
		return nil, fmt.Errorf("variant step failed: %w", err)
	}
	fmt.Printf("  simplified=%d traditional=%d neutral=%d\n",
		counts[unihan.ScriptSimplified], counts[unihan.ScriptTraditional], counts[unihan.ScriptNeutral])

	fmt.Println("Step 5: assigning HSK levels")
	direct, propagated, err := AddHSKLevels(records, paths.HSKCharlist)
	if err != nil {
		return nil, fmt.Errorf("HSK step failed: %w", err)
	}
	fmt.Printf("  %d direct, %d propagated via variants\n", direct, propagated)

	fmt.Println("Step 6: enriching heteronym readings")
	enriched := AddHeteronyms(records)
	fmt.Printf("  %d characters enriched\n", enriched)

	return records, nil
}
