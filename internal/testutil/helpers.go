// Package testutil provides shared fixtures and mocks for the pipeline
// tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile creates a test file with content, creating parent directories
// as needed.
func WriteFile(t *testing.T, path string, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// WriteCorpusCSV writes a small annotated sentence corpus and returns its
// path. The corpus has one simplified, one traditional and one mixed
// sentence, enough to drive classification and statistics.
func WriteCorpusCSV(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "cmn_sentences.csv")
	WriteFile(t, path, `sentence,script_type,char_pinyin_pairs,english_translation,sentence_hsk_level
我爱你。,simplified,我:wo3|爱:ai4|你:ni3|。:,"I love you.",1
我愛你。,traditional,我:wo3|愛:ai4|你:ni3|。:,,1
Tom很好。,neutral,Tom:|很:hen3|好:hao3|。:,"""Tom is fine.""",1
`)
	return path
}

// WriteCharsetCSV writes a small character dataset and returns its path.
func WriteCharsetCSV(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "chinese_characters.csv")
	WriteFile(t, path, `id,char,codepoint,pinyins,script_type,variants,gloss_en,examples,hsk_level
1,我,U+6211,wǒ,neutral,,I; me,,1
2,爱,U+7231,ài,simplified,愛,to love,爱情,1
3,愛,U+611B,ài,traditional,爱,to love,,1
4,你,U+4F60,nǐ,neutral,,you,,1
5,很,U+5F88,hěn,neutral,,very,,1
6,好,U+597D,hǎo|hào,neutral,,good,你好,1
7,发,U+53D1,fā|fà,simplified,發|髮,to send,头发,1
`)
	return path
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	if !strings.Contains(string(content), substring) {
		t.Errorf("Expected %s to contain %q", path, substring)
	}
}
