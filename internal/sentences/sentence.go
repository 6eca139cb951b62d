// Package sentences handles the sentence corpus: loading Tatoeba exports,
// classifying script type and HSK level, annotating per-character pinyin,
// and the CSV format shared by all stages.
package sentences

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Sentence is one corpus row. Later pipeline stages fill in more fields;
// unfilled fields stay empty in the CSV.
type Sentence struct {
	Text        string
	ScriptType  string
	Pairs       string // char:pinyin pairs, e.g. "我:wo3|爱:ai4|你:ni3"
	Translation string
	HSKLevel    string
}

var columns = []string{
	"sentence", "script_type", "char_pinyin_pairs",
	"english_translation", "sentence_hsk_level",
}

// IsChinese reports whether r is in the CJK Unified Ideographs block.
func IsChinese(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// ChineseChars extracts the Chinese characters of a string, in order.
func ChineseChars(s string) []rune {
	var chars []rune
	for _, r := range s {
		if IsChinese(r) {
			chars = append(chars, r)
		}
	}
	return chars
}

// LoadTatoeba reads sentence text from a Tatoeba per-language export, a TSV
// of "id<TAB>lang<TAB>text" lines.
func LoadTatoeba(path string) ([]Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Tatoeba export: %w", err)
	}
	defer f.Close()

	var sentences []Sentence

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		parts := strings.Split(strings.TrimSpace(scanner.Text()), "\t")
		if len(parts) < 3 {
			continue
		}
		sentences = append(sentences, Sentence{Text: parts[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read Tatoeba export: %w", err)
	}

	return sentences, nil
}

// Load reads a corpus CSV written by Save. Columns are resolved by header
// name so files from earlier pipeline stages load fine.
func Load(path string) ([]Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse corpus CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("corpus %s is empty", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	if _, ok := col["sentence"]; !ok {
		return nil, fmt.Errorf("corpus %s has no sentence column", path)
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	sentences := make([]Sentence, 0, len(rows)-1)
	for _, row := range rows[1:] {
		sentences = append(sentences, Sentence{
			Text:        field(row, "sentence"),
			ScriptType:  field(row, "script_type"),
			Pairs:       field(row, "char_pinyin_pairs"),
			Translation: field(row, "english_translation"),
			HSKLevel:    field(row, "sentence_hsk_level"),
		})
	}

	return sentences, nil
}

// Save writes the corpus CSV with the full column set.
func Save(path string, sentences []Sentence) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create corpus: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, s := range sentences {
		row := []string{s.Text, s.ScriptType, s.Pairs, s.Translation, s.HSKLevel}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write corpus row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush corpus: %w", err)
	}
	return nil
}

// Pair is one token of a char_pinyin_pairs field. Chinese characters carry
// their in-context pinyin; non-Chinese tokens carry an empty pinyin.
type Pair struct {
	Token  string
	Pinyin string
}

// ParsePairs splits a char_pinyin_pairs field.
func ParsePairs(field string) []Pair {
	if field == "" {
		return nil
	}
	var pairs []Pair
	for _, part := range strings.Split(field, "|") {
		if part == "" {
			continue
		}
		token, py, _ := strings.Cut(part, ":")
		pairs = append(pairs, Pair{Token: token, Pinyin: py})
	}
	return pairs
}

// FormatPairs renders pairs in the pipe format.
func FormatPairs(pairs []Pair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.Token + ":" + p.Pinyin
	}
	return strings.Join(parts, "|")
}
