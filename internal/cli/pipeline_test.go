package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"codeberg.org/mlutz/hancorpus/internal/sentences"
	"codeberg.org/mlutz/hancorpus/internal/testutil"
)

// run executes a subcommand against a fresh root command.
func run(t *testing.T, args ...string) error {
	t.Helper()

	flags := NewFlags()
	cmd := CreateRootCommand(flags)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestClassifyCommand(t *testing.T) {
	dir := t.TempDir()
	charset := testutil.WriteCharsetCSV(t, dir)
	corpus := testutil.WriteCorpusCSV(t, dir)

	if err := run(t, "classify", "--charset", charset, "--corpus", corpus); err != nil {
		t.Fatalf("classify: %v", err)
	}

	all, err := sentences.Load(corpus)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"simplified", "traditional", "neutral"}
	for i, script := range want {
		if all[i].ScriptType != script {
			t.Errorf("sentence %d: script %q, want %q", i, all[i].ScriptType, script)
		}
	}
}

func TestHSKCommand(t *testing.T) {
	dir := t.TempDir()
	charset := testutil.WriteCharsetCSV(t, dir)
	corpus := testutil.WriteCorpusCSV(t, dir)

	if err := run(t, "hsk", "--charset", charset, "--corpus", corpus); err != nil {
		t.Fatalf("hsk: %v", err)
	}

	all, err := sentences.Load(corpus)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range all {
		if s.HSKLevel != "1" {
			t.Errorf("sentence %d: level %q, want 1", i, s.HSKLevel)
		}
	}
}

func TestFixQuotesCommand(t *testing.T) {
	dir := t.TempDir()
	corpus := testutil.WriteCorpusCSV(t, dir)

	if err := run(t, "fixquotes", "--corpus", corpus); err != nil {
		t.Fatalf("fixquotes: %v", err)
	}

	all, err := sentences.Load(corpus)
	if err != nil {
		t.Fatal(err)
	}
	if all[2].Translation != "Tom is fine." {
		t.Errorf("quotes not stripped: %q", all[2].Translation)
	}
	if all[0].Translation != "I love you." {
		t.Errorf("clean translation modified: %q", all[0].Translation)
	}
}

func TestStatsCommand(t *testing.T) {
	dir := t.TempDir()
	corpus := testutil.WriteCorpusCSV(t, dir)
	out := filepath.Join(dir, "stats.json")

	if err := run(t, "stats", "--corpus", corpus, "-o", out); err != nil {
		t.Fatalf("stats: %v", err)
	}

	testutil.AssertFileExists(t, out)
	testutil.AssertFileContains(t, out, "totalSentences")
	testutil.AssertFileContains(t, out, "scriptTypeDistribution")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	charset := testutil.WriteCharsetCSV(t, dir)
	corpus := testutil.WriteCorpusCSV(t, dir)
	out := filepath.Join(dir, "bundles")

	if err := run(t, "export", "--charset", charset, "--corpus", corpus, "-o", out); err != nil {
		t.Fatalf("export: %v", err)
	}

	testutil.AssertFileExists(t, filepath.Join(out, "sentences.json"))
	testutil.AssertFileExists(t, filepath.Join(out, "characters.json"))
	testutil.AssertFileContains(t, filepath.Join(out, "sentences.json"), "char_id")
}
