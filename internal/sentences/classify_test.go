package sentences

import "testing"

func TestClassifyScript(t *testing.T) {
	scripts := map[rune]string{
		'我': "neutral",
		'爱': "simplified",
		'愛': "traditional",
		'你': "neutral",
		'乒': "ambiguous",
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"all neutral", "我你", ScriptNeutral},
		{"neutral plus simplified", "我爱你", ScriptSimplified},
		{"neutral plus traditional", "我愛你", ScriptTraditional},
		{"mixed scripts", "爱愛", ScriptAmbiguous},
		{"ambiguous char wins", "我乒", ScriptAmbiguous},
		{"unclassified chars only", "丠", ScriptUnknown},
		{"no chinese", "Hello!", ScriptUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := ClassifyScript(tt.text, scripts)
			if got != tt.want {
				t.Errorf("ClassifyScript(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyAll(t *testing.T) {
	scripts := map[rune]string{'爱': "simplified", '我': "neutral"}
	all := []Sentence{{Text: "我爱"}, {Text: "我"}}

	distribution := ClassifyAll(all, scripts)

	if all[0].ScriptType != ScriptSimplified || all[1].ScriptType != ScriptNeutral {
		t.Errorf("script types = %q, %q", all[0].ScriptType, all[1].ScriptType)
	}
	if distribution[ScriptSimplified] != 1 || distribution[ScriptNeutral] != 1 {
		t.Errorf("distribution = %v", distribution)
	}
}
