package llm

import (
	"fmt"

	"codeberg.org/mlutz/hancorpus/internal/pinyin"
	"codeberg.org/mlutz/hancorpus/internal/sentences"
)

// VerifiedChars are the only characters whose refined readings are applied
// to the corpus. Each has a well-understood ambiguity that per-character
// conversion gets wrong and sentence context resolves:
//
//	地  particle de vs noun dì
//	著  aspect marker zhe vs verb zhù
//	谁 誰  colloquial shéi vs formal shuí
//	觉 覺  sleep jiào vs feel jué
//	长 長  long cháng vs grow zhǎng
//	樂  music yuè vs happy lè
var VerifiedChars = map[string]bool{
	"地": true,
	"著": true,
	"谁": true,
	"誰": true,
	"觉": true,
	"覺": true,
	"长": true,
	"長": true,
	"樂": true,
}

// ApplyResult summarizes an apply run.
type ApplyResult struct {
	Applied int
	Skipped int
}

// Apply rewrites verified pinyin changes into the corpus. Only characters
// in VerifiedChars change, and only where the current reading still matches
// the report's before value. With dryRun the corpus is left untouched and
// every candidate change is printed. A positive limit caps the number of
// applied changes for incremental rollouts.
func Apply(all []sentences.Sentence, report *Report, limit int, dryRun bool) ApplyResult {
	var result ApplyResult

	prefix := ""
	if dryRun {
		prefix = "[dry run] "
	}

	for _, sc := range report.SentenceChanges {
		if limit > 0 && result.Applied >= limit {
			break
		}
		if sc.ID < 0 || sc.ID >= len(all) {
			fmt.Printf("  Warning: sentence %d not in corpus, skipping\n", sc.ID)
			continue
		}

		pairs := sentences.ParsePairs(all[sc.ID].Pairs)
		changed := false

		for _, change := range sc.Changes {
			if limit > 0 && result.Applied >= limit {
				break
			}
			if !VerifiedChars[change.Char] {
				result.Skipped++
				continue
			}

			found := false
			for i := range pairs {
				if pairs[i].Token != change.Char || pairs[i].Pinyin != change.Before {
					continue
				}
				// Tone-mark-only differences are not worth rewriting.
				if pinyin.Normalize(change.Before) == pinyin.Normalize(change.After) {
					result.Skipped++
					found = true
					break
				}

				if !dryRun {
					pairs[i].Pinyin = change.After
					changed = true
				}
				result.Applied++
				fmt.Printf("  %ssentence %d: %s: %s -> %s\n",
					prefix, sc.ID, change.Char, change.Before, change.After)
				found = true
				break
			}

			if !found {
				fmt.Printf("  Warning: %s with reading %s not found in sentence %d\n",
					change.Char, change.Before, sc.ID)
			}
		}

		if changed {
			all[sc.ID].Pairs = sentences.FormatPairs(pairs)
		}
	}

	return result
}
