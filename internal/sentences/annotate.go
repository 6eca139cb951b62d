package sentences

import (
	"fmt"
	"strings"
	"unicode"

	gopinyin "github.com/mozillazg/go-pinyin"
	"github.com/teatak/seg/dictionary"
	"github.com/teatak/seg/segmenter"
)

// Annotator derives per-character pinyin for sentences. Word segmentation
// gives the token structure; each Chinese character is then converted with
// tone-number pinyin. Ambiguous readings are corrected later by the
// LLM refinement stage, which sees the whole sentence.
type Annotator struct {
	seg  *segmenter.Segmenter
	args gopinyin.Args
}

// NewAnnotator loads the segmentation dictionary and prepares the pinyin
// converter. An empty dictPath uses an empty dictionary, which degrades to
// per-character segmentation.
func NewAnnotator(dictPath string) (*Annotator, error) {
	dict := dictionary.NewDictionary()
	if dictPath != "" {
		if err := dict.Load(dictPath); err != nil {
			return nil, fmt.Errorf("failed to load segmentation dictionary: %w", err)
		}
	}

	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone3

	return &Annotator{
		seg:  segmenter.NewSegmenter(dict),
		args: args,
	}, nil
}

// charPinyin converts one Chinese character to tone-number pinyin. Neutral
// tone syllables come back without a digit, matching the pair format.
func (a *Annotator) charPinyin(r rune) string {
	readings := gopinyin.SinglePinyin(r, a.args)
	if len(readings) == 0 {
		return ""
	}
	return readings[0]
}

// CharPairs maps a sentence to its char:pinyin pairs.
//
// Multi-character tokens without any Chinese (English words, numbers) stay
// whole with an empty pinyin. Whitespace is dropped. Punctuation and other
// single non-Chinese characters are kept with an empty pinyin.
func (a *Annotator) CharPairs(text string) []Pair {
	var pairs []Pair

	for _, token := range a.seg.Cut(text, segmenter.ModeDAG) {
		if strings.TrimSpace(token) == "" {
			continue
		}

		runes := []rune(token)
		hasChinese := false
		for _, r := range runes {
			if IsChinese(r) {
				hasChinese = true
				break
			}
		}

		if len(runes) > 1 && !hasChinese {
			pairs = append(pairs, Pair{Token: token})
			continue
		}

		for _, r := range runes {
			if unicode.IsSpace(r) {
				continue
			}
			p := Pair{Token: string(r)}
			if IsChinese(r) {
				p.Pinyin = a.charPinyin(r)
			}
			pairs = append(pairs, p)
		}
	}

	return pairs
}

// Pinyin renders a sentence as space-separated tone-number pinyin.
// Non-Chinese tokens pass through unchanged.
func (a *Annotator) Pinyin(text string) string {
	var parts []string
	for _, p := range a.CharPairs(text) {
		if p.Pinyin != "" {
			parts = append(parts, p.Pinyin)
		} else {
			parts = append(parts, p.Token)
		}
	}
	return strings.Join(parts, " ")
}

// AnnotateAll fills the char_pinyin_pairs field of every sentence and
// reports progress every reportEvery rows.
func (a *Annotator) AnnotateAll(all []Sentence, reportEvery int) {
	for i := range all {
		all[i].Pairs = FormatPairs(a.CharPairs(all[i].Text))
		if reportEvery > 0 && (i+1)%reportEvery == 0 {
			fmt.Printf("  Processed %d sentences...\n", i+1)
		}
	}
}
