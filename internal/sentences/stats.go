package sentences

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Stats summarizes a corpus file.
type Stats struct {
	TotalSentences int                      `json:"totalSentences"`
	UniqueChars    int                      `json:"totalCharsInCorpus"`
	ScriptTypes    map[string]int           `json:"scriptTypeDistribution"`
	HSKLevels      map[string]int           `json:"hskLevelDistribution,omitempty"`
	Lengths        map[string]LengthSummary `json:"sentenceLengthByHskLevel,omitempty"`
	GeneratedAt    string                   `json:"generatedAt"`
}

// LengthSummary describes sentence lengths, in Chinese characters, for one
// HSK level.
type LengthSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}

func summarizeLengths(lengths []int) LengthSummary {
	sort.Ints(lengths)

	sum := 0
	for _, n := range lengths {
		sum += n
	}

	mid := len(lengths) / 2
	median := float64(lengths[mid])
	if len(lengths)%2 == 0 {
		median = float64(lengths[mid-1]+lengths[mid]) / 2
	}

	return LengthSummary{
		Count:  len(lengths),
		Mean:   float64(sum) / float64(len(lengths)),
		Median: median,
		Min:    lengths[0],
		Max:    lengths[len(lengths)-1],
	}
}

// Collect computes corpus statistics. Unique characters are counted from
// the char:pinyin pairs, so only annotated Chinese characters contribute.
func Collect(all []Sentence) Stats {
	stats := Stats{
		TotalSentences: len(all),
		ScriptTypes:    make(map[string]int),
		HSKLevels:      make(map[string]int),
		GeneratedAt:    time.Now().Format(time.RFC3339),
	}

	unique := make(map[string]bool)
	lengthsByLevel := make(map[string][]int)
	for _, s := range all {
		script := s.ScriptType
		if script == "" {
			script = ScriptUnknown
		}
		stats.ScriptTypes[script]++

		if s.HSKLevel != "" {
			stats.HSKLevels[s.HSKLevel]++
			lengthsByLevel[s.HSKLevel] = append(lengthsByLevel[s.HSKLevel], len(ChineseChars(s.Text)))
		}

		for _, p := range ParsePairs(s.Pairs) {
			if p.Pinyin != "" {
				unique[p.Token] = true
			}
		}
	}
	stats.UniqueChars = len(unique)

	if len(lengthsByLevel) > 0 {
		stats.Lengths = make(map[string]LengthSummary, len(lengthsByLevel))
		for level, lengths := range lengthsByLevel {
			stats.Lengths[level] = summarizeLengths(lengths)
		}
	}

	return stats
}

// WriteJSON saves the statistics for the web front end.
func (s Stats) WriteJSON(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal statistics: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write statistics: %w", err)
	}
	return nil
}

// Print reports the statistics on stdout in a fixed order.
func (s Stats) Print() {
	fmt.Printf("Total sentences: %d\n", s.TotalSentences)
	fmt.Printf("Unique Chinese characters: %d\n", s.UniqueChars)

	fmt.Println("Script type distribution:")
	printDistribution(s.ScriptTypes, s.TotalSentences)

	if len(s.HSKLevels) > 0 {
		fmt.Println("HSK level distribution:")
		printDistribution(s.HSKLevels, s.TotalSentences)
	}

	if len(s.Lengths) > 0 {
		fmt.Println("Sentence length by HSK level:")
		keys := make([]string, 0, len(s.Lengths))
		for k := range s.Lengths {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			l := s.Lengths[k]
			fmt.Printf("  HSK %-10s mean=%.1f median=%.1f range=[%d-%d]\n",
				k, l.Mean, l.Median, l.Min, l.Max)
		}
	}
}

func printDistribution(counts map[string]int, total int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		pct := 0.0
		if total > 0 {
			pct = float64(counts[k]) / float64(total) * 100
		}
		fmt.Printf("  %-12s %7d (%5.1f%%)\n", k, counts[k], pct)
	}
}
