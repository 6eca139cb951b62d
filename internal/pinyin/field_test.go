package pinyin

import "testing"

func TestParseField(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  []Reading
	}{
		{
			name:  "with frequencies",
			field: "lè(283)|yuè(54)",
			want:  []Reading{{"lè", 283}, {"yuè", 54}},
		},
		{
			name:  "single with frequency",
			field: "yī(32747)",
			want:  []Reading{{"yī", 32747}},
		},
		{
			name:  "plain readings",
			field: "de|dì",
			want:  []Reading{{"de", 0}, {"dì", 0}},
		},
		{
			name:  "empty field",
			field: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseField(tt.field)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseField(%q) = %v, want %v", tt.field, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("reading %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatFieldRoundTrip(t *testing.T) {
	fields := []string{"lè(283)|yuè(54)", "de|dì", "shuí(1065)"}

	for _, f := range fields {
		if got := FormatField(ParseField(f)); got != f {
			t.Errorf("round trip of %q produced %q", f, got)
		}
	}
}

func TestBaseSet(t *testing.T) {
	set := BaseSet("lè(283)|yuè(54)")

	if !set["le"] || !set["yue"] {
		t.Errorf("BaseSet missing expected bases: %v", set)
	}
	if len(set) != 2 {
		t.Errorf("BaseSet has %d entries, want 2", len(set))
	}
}

func TestCorrupted(t *testing.T) {
	tests := []struct {
		syllable string
		bad      bool
		reason   string
	}{
		{"hǎo", false, ""},
		{"lǔ 74609.020", true, "has_numbers"},
		{"m̀", true, "has_combining_marks"},
		{"兙", true, "is_cjk_char"},
		{"", false, ""},
	}

	for _, tt := range tests {
		bad, reason := Corrupted(tt.syllable)
		if bad != tt.bad || reason != tt.reason {
			t.Errorf("Corrupted(%q) = (%v, %q), want (%v, %q)", tt.syllable, bad, reason, tt.bad, tt.reason)
		}
	}
}
