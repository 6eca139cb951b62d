package llm

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/mlutz/hancorpus/internal/sentences"
)

// mockProvider scripts chat replies for tests.
type mockProvider struct {
	reply func(prompt string) (string, error)
	calls int
}

func (m *mockProvider) Name() string      { return "mock" }
func (m *mockProvider) IsAvailable() bool { return true }

func (m *mockProvider) Complete(_ context.Context, prompt string) (string, error) {
	m.calls++
	return m.reply(prompt)
}

func fastConfig() BatchConfig {
	return BatchConfig{BatchSize: 10, MaxRetries: 2, RetryDelay: 1, RateDelay: 0}
}

func TestRefinePrompt(t *testing.T) {
	batch := []RefineItem{
		{ID: 3, Text: "我爱你。"},
		{ID: 4, Text: "你好！"},
	}

	prompt := refinePrompt(batch)

	if !strings.Contains(prompt, "3: 我爱你。") || !strings.Contains(prompt, "4: 你好！") {
		t.Errorf("prompt missing sentences:\n%s", prompt)
	}
	if !strings.Contains(prompt, "ONE SYLLABLE PER CHARACTER") {
		t.Error("prompt missing syllable rule")
	}
}

func TestParseRefineResponse(t *testing.T) {
	text := "3: wǒ ài nǐ 。\n\nnot a numbered line\n4: nǐ hǎo ！\n"

	tokens := parseRefineResponse(text)

	if len(tokens) != 2 {
		t.Fatalf("parsed %d sentences, want 2", len(tokens))
	}
	if len(tokens[3]) != 4 || tokens[3][0] != "wǒ" {
		t.Errorf("tokens[3] = %v", tokens[3])
	}
}

func TestAlignTokens(t *testing.T) {
	pairs := []sentences.Pair{
		{Token: "我", Pinyin: "wo3"},
		{Token: "说", Pinyin: "shuo1"},
		{Token: "Tom", Pinyin: ""},
		{Token: "！", Pinyin: ""},
	}

	aligned := alignTokens(pairs, []string{"wǒ", "shuō", "Tom", "！"})

	if aligned[0].Pinyin != "wǒ" || aligned[1].Pinyin != "shuō" {
		t.Errorf("Chinese pinyins = %q, %q", aligned[0].Pinyin, aligned[1].Pinyin)
	}
	if aligned[2].Pinyin != "" || aligned[3].Pinyin != "" {
		t.Errorf("preserved tokens gained pinyin: %+v", aligned[2:])
	}
	if pairs[0].Pinyin != "wo3" {
		t.Error("alignTokens modified its input")
	}
}

func TestRefinerRun(t *testing.T) {
	provider := &mockProvider{reply: func(prompt string) (string, error) {
		return "0: wǒ ài nǐ\n1: nǐ hǎo", nil
	}}

	items := []RefineItem{
		{ID: 0, Text: "我爱你", Pairs: sentences.ParsePairs("我:wo3|爱:ai4|你:ni3")},
		{ID: 1, Text: "你好", Pairs: sentences.ParsePairs("你:ni3|好:hao3")},
	}

	failed, err := NewRefiner(provider, nil, fastConfig()).Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(failed) != 0 {
		t.Errorf("failed batches = %v", failed)
	}
	if items[0].Pairs[0].Pinyin != "wǒ" {
		t.Errorf("refined pinyin = %q, want wǒ", items[0].Pairs[0].Pinyin)
	}
	if items[0].Raw != "wǒ ài nǐ" {
		t.Errorf("raw = %q", items[0].Raw)
	}
}

func TestRefinerRunKeepsOriginalOnFailure(t *testing.T) {
	provider := &mockProvider{reply: func(prompt string) (string, error) {
		return "", fmt.Errorf("service unavailable")
	}}

	items := []RefineItem{
		{ID: 0, Text: "我爱你", Pairs: sentences.ParsePairs("我:wo3|爱:ai4|你:ni3")},
	}

	failed, err := NewRefiner(provider, nil, fastConfig()).Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(failed) != 1 {
		t.Fatalf("failed batches = %v, want 1", failed)
	}
	if items[0].Pairs[0].Pinyin != "wo3" {
		t.Errorf("original pinyin lost: %q", items[0].Pairs[0].Pinyin)
	}
}

func TestRefinerRunResumesFromCheckpoint(t *testing.T) {
	cp, err := OpenCheckpoint(filepath.Join(t.TempDir(), "checkpoint.db"))
	if err != nil {
		t.Fatalf("OpenCheckpoint failed: %v", err)
	}
	defer cp.Close()

	// Simulate an earlier run that processed the first sentence.
	if err := cp.SaveResult(refineStage, 0, `{"pairs":"我:wǒ","raw":"wǒ"}`); err != nil {
		t.Fatal(err)
	}
	if err := cp.SetNextIndex(refineStage, 1); err != nil {
		t.Fatal(err)
	}

	provider := &mockProvider{reply: func(prompt string) (string, error) {
		if strings.Contains(prompt, "0: 我") {
			t.Error("already-processed sentence was resent")
		}
		return "1: nǐ hǎo", nil
	}}

	items := []RefineItem{
		{ID: 0, Text: "我", Pairs: sentences.ParsePairs("我:wo3")},
		{ID: 1, Text: "你好", Pairs: sentences.ParsePairs("你:ni3|好:hao3")},
	}

	cfg := fastConfig()
	cfg.BatchSize = 1
	if _, err := NewRefiner(provider, cp, cfg).Run(context.Background(), items); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
	if items[0].Pairs[0].Pinyin != "wǒ" {
		t.Errorf("checkpointed result not restored: %+v", items[0].Pairs)
	}
	if items[1].Pairs[0].Pinyin != "nǐ" {
		t.Errorf("new result missing: %+v", items[1].Pairs)
	}
}

func TestWriteReadRefineOutput(t *testing.T) {
	items := []RefineItem{
		{ID: 0, Text: "我", Pairs: sentences.ParsePairs("我:wǒ"), Raw: "wǒ"},
	}

	path := filepath.Join(t.TempDir(), "refined.json")
	if err := WriteRefineOutput(path, "mock", items, nil); err != nil {
		t.Fatalf("WriteRefineOutput failed: %v", err)
	}

	out, err := ReadRefineOutput(path)
	if err != nil {
		t.Fatalf("ReadRefineOutput failed: %v", err)
	}
	if out.Metadata.TotalSentences != 1 || out.Metadata.Source != "mock" {
		t.Errorf("metadata = %+v", out.Metadata)
	}
	if out.Sentences[0].Pairs != "我:wǒ" {
		t.Errorf("pairs = %q", out.Sentences[0].Pairs)
	}
}
