// Package cedict parses the CC-CEDICT dictionary file. Entries look like
//
//	漢語 汉语 [Han4 yu3] /Chinese language/
//
// with the traditional form first, then simplified, the bracketed
// tone-number pinyin, and slash-separated glosses.
package cedict

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Entry is one dictionary line.
type Entry struct {
	Traditional string
	Simplified  string
	Pinyin      string
	Glosses     []string
}

var lineRe = regexp.MustCompile(`^(\S+)\s+(\S+)\s+\[([^\]]+)\]\s+/(.+)/$`)

// Parse reads every well-formed entry from a CC-CEDICT file. Comment lines
// and lines that do not match the entry grammar are skipped.
func Parse(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CEDICT file: %w", err)
	}
	defer f.Close()

	var entries []Entry

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entries = append(entries, Entry{
			Traditional: m[1],
			Simplified:  m[2],
			Pinyin:      m[3],
			Glosses:     strings.Split(m[4], "/"),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read CEDICT file: %w", err)
	}

	return entries, nil
}

// Gloss returns the entry's primary gloss, or "" when the entry has none.
func (e Entry) Gloss() string {
	if len(e.Glosses) == 0 {
		return ""
	}
	return strings.TrimSpace(e.Glosses[0])
}

// Index groups the parsed dictionary for character enrichment lookups.
type Index struct {
	// singles maps a single-character headword (traditional or simplified)
	// to its first entry's primary gloss.
	singles map[rune]string
	// compounds maps a character to multi-character simplified headwords
	// containing it, in file order.
	compounds map[rune][]string
}

// NewIndex builds the lookup structures used by the dataset build.
func NewIndex(entries []Entry) *Index {
	idx := &Index{
		singles:   make(map[rune]string),
		compounds: make(map[rune][]string),
	}

	for _, e := range entries {
		gloss := e.Gloss()

		trad := []rune(e.Traditional)
		simp := []rune(e.Simplified)

		if len(trad) == 1 && gloss != "" {
			if _, ok := idx.singles[trad[0]]; !ok {
				idx.singles[trad[0]] = gloss
			}
		}
		if len(simp) == 1 && gloss != "" {
			if _, ok := idx.singles[simp[0]]; !ok {
				idx.singles[simp[0]] = gloss
			}
		}

		if len(simp) > 1 {
			seen := make(map[rune]bool, len(simp))
			for _, r := range simp {
				if seen[r] {
					continue
				}
				seen[r] = true
				idx.compounds[r] = append(idx.compounds[r], e.Simplified)
			}
		}
	}

	return idx
}

// Gloss returns the primary gloss for a single character, or "".
func (idx *Index) Gloss(r rune) string {
	return idx.singles[r]
}

// Examples returns up to max compound words containing the character.
func (idx *Index) Examples(r rune, max int) []string {
	words := idx.compounds[r]
	if len(words) > max {
		words = words[:max]
	}
	return words
}
