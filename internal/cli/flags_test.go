package cli

import (
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Readings", flags.Readings, "data/unihan/Unihan_Readings.txt"},
		{"Variants", flags.Variants, "data/unihan/Unihan_Variants.txt"},
		{"Charset", flags.Charset, "data/character_set/chinese_characters.csv"},
		{"Corpus", flags.Corpus, "data/sentences/cmn_sentences.csv"},
		{"MaxExamples", flags.MaxExamples, 3},
		{"BatchSize", flags.BatchSize, 10},
		{"ChatProvider", flags.ChatProvider, "openai"},
		{"AudioProvider", flags.AudioProvider, "polly"},
		{"AWSRegion", flags.AWSRegion, "us-east-1"},
		{"Voice", flags.Voice, "Zhiyu"},
		{"Engine", flags.Engine, "neural"},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini-tts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	boolTests := []struct {
		name  string
		value bool
	}{
		{"Download", flags.Download},
		{"DryRun", flags.DryRun},
		{"OnlyUsed", flags.OnlyUsed},
		{"Force", flags.Force},
		{"PureChinese", flags.PureChinese},
		{"ListModels", flags.ListModels},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}
}
