package sentences

import "testing"

func TestFixTranslationQuotes(t *testing.T) {
	tests := []struct {
		name    string
		chinese string
		english string
		want    string
	}{
		{
			name:    "strips added quotes",
			chinese: "我爱你。",
			english: `"I love you."`,
			want:    "I love you.",
		},
		{
			name:    "keeps quotes present in chinese",
			chinese: "他说：「你好」。",
			english: `"Hello," he said.`,
			want:    `"Hello," he said.`,
		},
		{
			name:    "unquoted passes through",
			chinese: "我爱你。",
			english: "I love you.",
			want:    "I love you.",
		},
		{
			name:    "leading quote only",
			chinese: "我爱你。",
			english: `"I love you.`,
			want:    `"I love you.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixTranslationQuotes(tt.chinese, tt.english); got != tt.want {
				t.Errorf("FixTranslationQuotes = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFixAllQuotes(t *testing.T) {
	all := []Sentence{
		{Text: "我爱你。", Translation: `"I love you."`},
		{Text: "你好。", Translation: "Hello."},
		{Text: "早。"},
	}

	if fixed := FixAllQuotes(all); fixed != 1 {
		t.Errorf("fixed = %d, want 1", fixed)
	}
	if all[0].Translation != "I love you." {
		t.Errorf("translation = %q", all[0].Translation)
	}
}
