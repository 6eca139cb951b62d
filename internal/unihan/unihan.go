// Package unihan parses the Unicode Unihan database text exports
// (Unihan_Readings.txt and Unihan_Variants.txt). Files are tab-separated
// "U+XXXX<TAB>field<TAB>value" lines with # comments.
package unihan

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// CodepointToChar converts "U+4E00" to its character. Returns 0 for
// malformed input.
func CodepointToChar(codepoint string) rune {
	if !strings.HasPrefix(codepoint, "U+") {
		return 0
	}
	code, err := strconv.ParseUint(codepoint[2:], 16, 32)
	if err != nil {
		return 0
	}
	return rune(code)
}

// CharToCodepoint converts a character to "U+4E00" form.
func CharToCodepoint(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}

// eachEntry streams the non-comment entries of a Unihan export, calling fn
// with (codepoint, field, value).
func eachEntry(path string, fn func(codepoint, field, value string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open Unihan file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}
		fn(parts[0], parts[1], parts[2])
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read Unihan file: %w", err)
	}
	return nil
}
