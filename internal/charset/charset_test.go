package charset

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mlutz/hancorpus/internal/unihan"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestBuildBase(t *testing.T) {
	records := BuildBase()

	if len(records) != 20992 {
		t.Fatalf("base range has %d characters, want 20992", len(records))
	}
	if records[0].ID != 1 || records[0].Char != "一" || records[0].Codepoint != "U+4E00" {
		t.Errorf("first record = %+v", records[0])
	}
	last := records[len(records)-1]
	if last.Codepoint != "U+9FFF" || last.ID != 20992 {
		t.Errorf("last record = %+v", last)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	records := []Record{
		{ID: 1, Char: "乐", Codepoint: "U+4E50", Pinyins: "lè(283)|yuè(54)",
			ScriptType: "simplified", Variants: "樂", GlossEN: "happy",
			Examples: "快乐|音乐", HSKLevel: "1"},
		{ID: 2, Char: "一", Codepoint: "U+4E00", Pinyins: "yī",
			ScriptType: "neutral", HSKLevel: "1"},
	}

	path := filepath.Join(t.TempDir(), "characters.csv")
	if err := Save(path, records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != len(records) {
		t.Fatalf("loaded %d records, want %d", len(loaded), len(records))
	}
	for i := range records {
		if loaded[i] != records[i] {
			t.Errorf("record %d = %+v, want %+v", i, loaded[i], records[i])
		}
	}
}

func TestAddReadings(t *testing.T) {
	path := writeFixture(t, "Unihan_Readings.txt",
		"U+4E50\tkHanyuPinlu\tlè(283) yuè(54)\nU+4E00\tkMandarin\tyī\n")

	records := []Record{
		{ID: 1, Char: "一", Codepoint: "U+4E00"},
		{ID: 2, Char: "乐", Codepoint: "U+4E50"},
		{ID: 3, Char: "㐀", Codepoint: "U+3400"},
	}

	filled, err := AddReadings(records, path)
	if err != nil {
		t.Fatalf("AddReadings failed: %v", err)
	}
	if filled != 2 {
		t.Errorf("filled = %d, want 2", filled)
	}
	if records[1].Pinyins != "lè(283)|yuè(54)" {
		t.Errorf("乐 pinyins = %q", records[1].Pinyins)
	}
	if records[2].Pinyins != "" {
		t.Errorf("㐀 pinyins = %q, want empty", records[2].Pinyins)
	}
}

func TestAddGlosses(t *testing.T) {
	path := writeFixture(t, "cedict_ts.u8",
		"漢 汉 [han4] /Chinese/\n漢語 汉语 [Han4 yu3] /Chinese language/\n漢字 汉字 [han4 zi4] /Chinese character/\n好漢 好汉 [hao3 han4] /hero/\n")

	records := []Record{
		{ID: 1, Char: "汉", Codepoint: "U+6C49"},
		{ID: 2, Char: "漢", Codepoint: "U+6F22"},
	}

	filled, err := AddGlosses(records, path, 2)
	if err != nil {
		t.Fatalf("AddGlosses failed: %v", err)
	}
	if filled != 2 {
		t.Errorf("filled = %d, want 2", filled)
	}
	if records[0].GlossEN != "Chinese" {
		t.Errorf("汉 gloss = %q", records[0].GlossEN)
	}
	if records[0].Examples != "汉语|汉字" {
		t.Errorf("汉 examples = %q, want capped at 2", records[0].Examples)
	}
}

func TestAddVariants(t *testing.T) {
	path := writeFixture(t, "Unihan_Variants.txt",
		"U+6C49\tkTraditionalVariant\tU+6F22\nU+6F22\tkSimplifiedVariant\tU+6C49\nU+53D1\tkTraditionalVariant\tU+767C U+9AEE\n")

	records := []Record{
		{ID: 1, Char: "汉", Codepoint: "U+6C49"},
		{ID: 2, Char: "漢", Codepoint: "U+6F22"},
		{ID: 3, Char: "一", Codepoint: "U+4E00"},
		{ID: 4, Char: "发", Codepoint: "U+53D1"},
	}

	counts, err := AddVariants(records, path)
	if err != nil {
		t.Fatalf("AddVariants failed: %v", err)
	}

	if records[0].ScriptType != "simplified" || records[0].Variants != "漢" {
		t.Errorf("汉 = %+v", records[0])
	}
	if records[1].ScriptType != "traditional" || records[1].Variants != "汉" {
		t.Errorf("漢 = %+v", records[1])
	}
	if records[2].ScriptType != "neutral" {
		t.Errorf("一 script = %q", records[2].ScriptType)
	}
	if records[3].ScriptType != "simplified" || records[3].Variants != "發|髮" {
		t.Errorf("发 = %+v, want pipe-separated variants 發|髮", records[3])
	}
	if counts[unihan.ScriptNeutral] != 1 {
		t.Errorf("neutral count = %d", counts[unihan.ScriptNeutral])
	}
}

func TestAddHSKLevels(t *testing.T) {
	path := writeFixture(t, "charlist.txt",
		"一级汉字表（300字）\n1\t汉\n")

	records := []Record{
		{ID: 1, Char: "汉", Codepoint: "U+6C49", Variants: "漢"},
		{ID: 2, Char: "漢", Codepoint: "U+6F22", Variants: "汉"},
		{ID: 3, Char: "㐀", Codepoint: "U+3400"},
	}

	direct, propagated, err := AddHSKLevels(records, path)
	if err != nil {
		t.Fatalf("AddHSKLevels failed: %v", err)
	}
	if direct != 1 || propagated != 1 {
		t.Errorf("direct=%d propagated=%d, want 1 and 1", direct, propagated)
	}
	if records[0].HSKLevel != "1" || records[1].HSKLevel != "1" {
		t.Errorf("levels = %q, %q, want both 1", records[0].HSKLevel, records[1].HSKLevel)
	}
	if records[2].HSKLevel != "" {
		t.Errorf("㐀 level = %q, want empty", records[2].HSKLevel)
	}
}

func TestAddHeteronyms(t *testing.T) {
	records := []Record{
		// 乐 has lè and yuè in the go-pinyin dictionary; seeding only one
		// base should get the other appended.
		{ID: 1, Char: "乐", Codepoint: "U+4E50", Pinyins: "lè(283)"},
	}

	enriched := AddHeteronyms(records)

	if enriched != 1 {
		t.Fatalf("enriched = %d, want 1", enriched)
	}
	if records[0].Pinyins == "lè(283)" {
		t.Error("no heteronym appended for 乐")
	}
}

func TestCleanCorrupted(t *testing.T) {
	records := []Record{
		{ID: 1, Char: "鲁", Pinyins: "lǔ 74609.020|lǔ"},
		{ID: 2, Char: "好", Pinyins: "hǎo|hào"},
	}

	removals := CleanCorrupted(records)

	if len(removals) != 1 {
		t.Fatalf("removals = %v, want one", removals)
	}
	if removals[0].Reason != "has_numbers" {
		t.Errorf("reason = %q", removals[0].Reason)
	}
	if records[0].Pinyins != "lǔ" {
		t.Errorf("cleaned field = %q, want lǔ", records[0].Pinyins)
	}
	if records[1].Pinyins != "hǎo|hào" {
		t.Errorf("valid field modified: %q", records[1].Pinyins)
	}
}

func TestFixToneNumbers(t *testing.T) {
	records := []Record{
		{ID: 1, Char: "好", Pinyins: "hao3|hao4"},
		{ID: 2, Char: "女", Pinyins: "nv3"},
		{ID: 3, Char: "一", Pinyins: "yī"},
	}

	fixed := FixToneNumbers(records)

	// A record with several tone-number readings counts once.
	if fixed != 2 {
		t.Errorf("fixed = %d, want 2", fixed)
	}
	if records[0].Pinyins != "hǎo|hào" {
		t.Errorf("好 = %q, want hǎo|hào", records[0].Pinyins)
	}
	if records[1].Pinyins != "nǚ" {
		t.Errorf("女 = %q, want nǚ", records[1].Pinyins)
	}
	if records[2].Pinyins != "yī" {
		t.Errorf("一 = %q, should be untouched", records[2].Pinyins)
	}
}
