package hsk

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
)

const (
	// CharlistURL is the published HSK 3.0 character list.
	CharlistURL = "https://raw.githubusercontent.com/elkmovie/hsk30/main/charlist.txt"

	downloadTimeout = 60 * time.Second
)

// expectedCounts is the official size of each level's character list.
var expectedCounts = map[string]int{
	"1": 300, "2": 300, "3": 300, "4": 300, "5": 300, "6": 300,
	Level79: 1200,
}

// sectionRe matches the list's section headers, e.g. "一级汉字表" or
// "7—9级汉字表（1200字）".
var sectionRe = regexp.MustCompile(`(一|二|三|四|五|六|7—9|7-9)级汉字表`)

// entryRe matches one numbered character line: "12<TAB>爱".
var entryRe = regexp.MustCompile(`^\d+\t(.)`)

var sectionLevels = map[string]string{
	"一": "1", "二": "2", "三": "3", "四": "4", "五": "5", "六": "6",
	"7—9": Level79, "7-9": Level79,
}

// Download fetches the charlist and writes it to path.
func Download(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", CharlistURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	client := &http.Client{Timeout: downloadTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download HSK charlist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HSK charlist download returned status %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create charlist file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("failed to write charlist file: %w", err)
	}

	return nil
}

// ParseCharlist reads the charlist into a character-to-level map. Sections
// are introduced by their 汉字表 headers; every numbered line inside a
// section contributes one character at that section's level.
func ParseCharlist(path string) (map[rune]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open charlist: %w", err)
	}
	defer f.Close()

	levels := make(map[rune]string)
	counts := make(map[string]int)
	current := ""

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if m := sectionRe.FindStringSubmatch(line); m != nil {
			current = sectionLevels[m[1]]
			continue
		}
		if current == "" {
			continue
		}
		if m := entryRe.FindStringSubmatch(scanner.Text()); m != nil {
			char := []rune(m[1])[0]
			if _, ok := levels[char]; !ok {
				levels[char] = current
				counts[current]++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read charlist: %w", err)
	}

	for level, want := range expectedCounts {
		if got := counts[level]; got != want && got != 0 {
			fmt.Fprintf(os.Stderr, "Warning: HSK level %s has %d characters, expected %d\n", level, got, want)
		}
	}

	return levels, nil
}

// Propagate spreads levels across script variants: a character inherits the
// level of any variant that has one, and conflicts resolve to the lower
// (easier) level. The variant map must be bidirectional.
func Propagate(levels map[rune]string, variants map[rune][]rune) int {
	assigned := 0

	direct := make([]rune, 0, len(levels))
	for char := range levels {
		direct = append(direct, char)
	}

	for _, char := range direct {
		level := levels[char]
		for _, v := range variants[char] {
			existing, ok := levels[v]
			if !ok {
				levels[v] = level
				assigned++
				continue
			}
			if lower := Lower(existing, level); lower != existing {
				levels[v] = lower
			}
		}
	}

	return assigned
}
