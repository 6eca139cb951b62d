package unihan

import (
	"regexp"
	"strconv"
	"strings"

	"codeberg.org/mlutz/hancorpus/internal/pinyin"
)

// Readings holds the pinyin readings extracted for one codepoint.
type Readings struct {
	Pinyins []string // tone-mark form, source order
	Freqs   []int    // parallel to Pinyins when kHanyuPinlu provided counts
}

// pinluRe matches "lè(283)" entries inside a kHanyuPinlu value.
var pinluRe = regexp.MustCompile(`(\S+?)\((\d+)\)`)

// ParseReadings extracts pinyin readings from Unihan_Readings.txt.
//
// Three fields carry Mandarin readings, in decreasing order of usefulness:
// kHanyuPinlu has frequency counts ("lè(283) yuè(54)"), kHanyuPinyin lists
// multiple readings behind a dictionary position ("10263.070:dān,qiú"), and
// kMandarin gives one or two space-separated readings. Only the best
// available field is used per character.
func ParseReadings(path string) (map[string]Readings, error) {
	fields := make(map[string]map[string]string)

	err := eachEntry(path, func(codepoint, field, value string) {
		switch field {
		case "kMandarin", "kHanyuPinyin", "kHanyuPinlu":
			if fields[codepoint] == nil {
				fields[codepoint] = make(map[string]string)
			}
			fields[codepoint][field] = value
		}
	})
	if err != nil {
		return nil, err
	}

	readings := make(map[string]Readings, len(fields))

	for codepoint, fv := range fields {
		var r Readings

		if v, ok := fv["kHanyuPinlu"]; ok {
			for _, m := range pinluRe.FindAllStringSubmatch(v, -1) {
				freq, _ := strconv.Atoi(m[2])
				r.Pinyins = append(r.Pinyins, m[1])
				r.Freqs = append(r.Freqs, freq)
			}
		}
		if len(r.Pinyins) == 0 {
			if v, ok := fv["kHanyuPinyin"]; ok {
				// Take the part after the dictionary position prefix.
				if i := strings.Index(v, ":"); i >= 0 {
					for _, p := range strings.Split(v[i+1:], ",") {
						if p = strings.TrimSpace(p); p != "" {
							r.Pinyins = append(r.Pinyins, p)
						}
					}
				}
			}
		}
		if len(r.Pinyins) == 0 {
			if v, ok := fv["kMandarin"]; ok {
				r.Pinyins = append(r.Pinyins, strings.Fields(v)...)
			}
		}

		if len(r.Pinyins) > 0 {
			readings[codepoint] = r
		}
	}

	return readings, nil
}

// Field renders the readings in the character dataset's pipe format,
// attaching frequencies where present: "lè(283)|yuè(54)".
func (r Readings) Field() string {
	readings := make([]pinyin.Reading, 0, len(r.Pinyins))
	for i, p := range r.Pinyins {
		reading := pinyin.Reading{Syllable: p}
		if i < len(r.Freqs) {
			reading.Freq = r.Freqs[i]
		}
		readings = append(readings, reading)
	}
	return pinyin.FormatField(readings)
}

// MandarinSyllables extracts every kMandarin reading in the file as a set
// of tone-mark syllables, splitting multi-reading values. This drives the
// audio pipeline's syllable inventory.
func MandarinSyllables(path string) (map[string]bool, error) {
	syllables := make(map[string]bool)

	err := eachEntry(path, func(_, field, value string) {
		if field != "kMandarin" {
			return
		}
		for _, s := range strings.Fields(value) {
			syllables[s] = true
		}
	})
	if err != nil {
		return nil, err
	}

	return syllables, nil
}
