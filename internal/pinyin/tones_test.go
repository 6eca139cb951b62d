package pinyin

import "testing"

func TestSplitToneMark(t *testing.T) {
	tests := []struct {
		in   string
		base string
		tone int
	}{
		{"yī", "yi", 1},
		{"hǎo", "hao", 3},
		{"lè", "le", 4},
		{"ma", "ma", 0},
		{"nǚ", "nü", 3},
		{"lǜ", "lü", 4},
		{"zhōng", "zhong", 1},
	}

	for _, tt := range tests {
		base, tone := SplitToneMark(tt.in)
		if base != tt.base || tone != tt.tone {
			t.Errorf("SplitToneMark(%q) = (%q, %d), want (%q, %d)", tt.in, base, tone, tt.base, tt.tone)
		}
	}
}

func TestMarkToNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"yī", "yi1"},
		{"hǎo", "hao3"},
		{"nǚ", "nv3"},
		{"zhèi", "zhei4"},
		{"ma", "ma0"},
		{"de", "de0"},
	}

	for _, tt := range tests {
		if got := MarkToNumber(tt.in); got != tt.want {
			t.Errorf("MarkToNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNumberToMark(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"a takes the mark", "hao3", "hǎo"},
		{"o before e", "tong2", "tóng"},
		{"e when no a or o", "shei2", "shéi"},
		{"second vowel of iu", "liu2", "liú"},
		{"second vowel of ui", "shui3", "shuǐ"},
		{"lone i", "yi1", "yī"},
		{"v spelled as u-umlaut", "lv4", "lǜ"},
		{"neutral tone unchanged", "de", "de"},
		{"explicit neutral zero", "ma0", "ma"},
		{"fourth tone", "zhong4", "zhòng"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NumberToMark(tt.in); got != tt.want {
				t.Errorf("NumberToMark(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMarkNumberRoundTrip(t *testing.T) {
	syllables := []string{"yī", "hǎo", "lǜ", "shuǐ", "zhòng", "liú"}

	for _, s := range syllables {
		if got := NumberToMark(MarkToNumber(s)); got != s {
			t.Errorf("round trip of %q produced %q", s, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"shéi", "shei"},
		{"shei2", "shei"},
		{"dì", "di"},
		{"de", "de"},
		{"nǚ", "nv"},
		{"LÜ", "lv"},
		{" hao3 ", "hao"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasToneNumber(t *testing.T) {
	if !HasToneNumber("tong2") {
		t.Error("tong2 should have a tone number")
	}
	if HasToneNumber("de") {
		t.Error("de should not have a tone number")
	}
	if HasToneNumber("") {
		t.Error("empty string should not have a tone number")
	}
}
