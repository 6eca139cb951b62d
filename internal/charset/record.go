// Package charset builds and maintains the character dataset: one CSV row
// per CJK character, assembled from the Unihan database, CC-CEDICT, and the
// HSK 3.0 character lists.
package charset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Record is one character row in the dataset CSV.
type Record struct {
	ID         int
	Char       string
	Codepoint  string
	Pinyins    string // pipe-separated readings, e.g. "lè(283)|yuè(54)"
	ScriptType string
	Variants   string // pipe-separated variant characters, e.g. "發|髮"
	GlossEN    string
	Examples   string // pipe-separated compound words
	HSKLevel   string
}

var columns = []string{
	"id", "char", "codepoint", "pinyins", "script_type",
	"variants", "gloss_en", "examples", "hsk_level",
}

// Load reads a dataset CSV produced by Save.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	if len(rows[0]) != len(columns) {
		return nil, fmt.Errorf("dataset has %d columns, want %d", len(rows[0]), len(columns))
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad id %q: %w", i+2, row[0], err)
		}
		records = append(records, Record{
			ID:         id,
			Char:       row[1],
			Codepoint:  row[2],
			Pinyins:    row[3],
			ScriptType: row[4],
			Variants:   row[5],
			GlossEN:    row[6],
			Examples:   row[7],
			HSKLevel:   row[8],
		})
	}

	return records, nil
}

// Save writes the dataset CSV with its header row.
func Save(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.ID), r.Char, r.Codepoint, r.Pinyins,
			r.ScriptType, r.Variants, r.GlossEN, r.Examples, r.HSKLevel,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush dataset: %w", err)
	}
	return nil
}

// Index maps characters to their position in a record slice.
func Index(records []Record) map[string]int {
	idx := make(map[string]int, len(records))
	for i, r := range records {
		idx[r.Char] = i
	}
	return idx
}
