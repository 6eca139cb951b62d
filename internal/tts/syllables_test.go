package tts

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mlutz/hancorpus/internal/sentences"
)

func writeReadingsFixture(t *testing.T) string {
	t.Helper()

	content := `# Unihan_Readings fixture
U+4E00	kMandarin	yī
U+4E50	kMandarin	lè yuè
U+4E86	kMandarin	le
U+5973	kMandarin	nǚ
`
	path := filepath.Join(t.TempDir(), "Unihan_Readings.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDatasetSyllables(t *testing.T) {
	corpus := []sentences.Sentence{
		{Pairs: "我:wo3|的:de|书:shu1"},
		{Pairs: "Tom:|！:"},
	}

	used := DatasetSyllables(corpus)

	for _, want := range []string{"wo3", "de0", "shu1"} {
		if !used[want] {
			t.Errorf("expected %q in dataset syllables, got %v", want, used)
		}
	}
	if len(used) != 3 {
		t.Errorf("expected 3 syllables, got %d: %v", len(used), used)
	}
}

func TestEnumerate(t *testing.T) {
	path := writeReadingsFixture(t)

	enum, err := Enumerate(path, map[string]bool{"yi1": true, "le4": true})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	lookup := enum.Lookup()

	yi, ok := lookup["yi1"]
	if !ok {
		t.Fatalf("expected yi1 in enumeration, got %v", lookup)
	}
	if yi.Base != "yi" || yi.Tone != 1 || yi.Filename != "yi1" || !yi.ExistsInDataset {
		t.Errorf("unexpected entry for yi1: %+v", yi)
	}

	nv, ok := lookup["nv3"]
	if !ok {
		t.Fatalf("expected nv3 in enumeration")
	}
	if nv.Base != "nv" || nv.BaseProper != "nü" {
		t.Errorf("expected v base with ü display form, got %+v", nv)
	}
	if nv.ExistsInDataset {
		t.Error("nv3 should not be marked as used")
	}

	le0, ok := lookup["le0"]
	if !ok {
		t.Fatalf("expected neutral le0 in enumeration")
	}
	if le0.Tone != 0 {
		t.Errorf("expected tone 0 for le, got %d", le0.Tone)
	}

	// yī, lè, yuè, le, nǚ
	if enum.Metadata.TotalSyllables != 5 {
		t.Errorf("expected 5 syllables, got %d", enum.Metadata.TotalSyllables)
	}
	if enum.Metadata.UsedInDataset != 2 {
		t.Errorf("expected 2 used syllables, got %d", enum.Metadata.UsedInDataset)
	}
	if enum.Metadata.CoveragePct != 40 {
		t.Errorf("expected 40%% coverage, got %v", enum.Metadata.CoveragePct)
	}
}

func TestEnumerateAddsDatasetOnlySyllables(t *testing.T) {
	path := writeReadingsFixture(t)

	enum, err := Enumerate(path, map[string]bool{"hao3": true})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	hao, ok := enum.Lookup()["hao3"]
	if !ok {
		t.Fatal("expected corpus syllable hao3 added despite missing from Unihan")
	}
	if !hao.ExistsInDataset || hao.Base != "hao" || hao.Tone != 3 {
		t.Errorf("unexpected entry: %+v", hao)
	}
	if enum.Metadata.TotalSyllables != 6 {
		t.Errorf("expected 6 syllables, got %d", enum.Metadata.TotalSyllables)
	}
}

func TestEnumerationRoundTrip(t *testing.T) {
	path := writeReadingsFixture(t)

	enum, err := Enumerate(path, nil)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	out := filepath.Join(t.TempDir(), "syllables.json")
	if err := enum.WriteJSON(out); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	loaded, err := ReadEnumeration(out)
	if err != nil {
		t.Fatalf("ReadEnumeration: %v", err)
	}
	if len(loaded.Syllables) != len(enum.Syllables) {
		t.Errorf("round trip lost syllables: %d != %d", len(loaded.Syllables), len(enum.Syllables))
	}
	if loaded.Metadata.TotalSyllables != enum.Metadata.TotalSyllables {
		t.Errorf("round trip lost metadata")
	}
}

func TestSsmlFor(t *testing.T) {
	got := ssmlFor("ma3")
	want := `<speak><phoneme alphabet="x-amazon-pinyin" ph="ma3">字</phoneme></speak>`
	if got != want {
		t.Errorf("ssmlFor(ma3) = %q, want %q", got, want)
	}
}

func TestSyllableRe(t *testing.T) {
	valid := []string{"ma3", "de0", "lv4", "zhuang1"}
	invalid := []string{"ma", "ma5", "MA3", "nǚ3", "ma3 de0", ""}

	for _, s := range valid {
		if !syllableRe.MatchString(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range invalid {
		if syllableRe.MatchString(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
