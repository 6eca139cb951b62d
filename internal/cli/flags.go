package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile string

	// Source data paths
	Readings string // Unihan_Readings.txt
	Variants string // Unihan_Variants.txt
	CEDICT   string // cedict_ts.u8
	HSKList  string // HSK 3.0 character list
	Download bool   // fetch the HSK list when missing

	// Pipeline data paths
	Charset   string // character dataset CSV
	Corpus    string // sentence corpus CSV
	SegDict   string // segmenter dictionary, empty for per-character cuts
	Refined   string // refinement output JSON
	Report    string // pinyin change report JSON
	Syllables string // syllable inventory JSON

	// Build flags
	MaxExamples int
	ReportEvery int

	// Chat model flags
	ChatProvider string
	ChatModel    string
	Checkpoint   string
	BatchSize    int
	Limit        int
	DryRun       bool
	ListModels   bool

	// Audio flags
	AudioProvider string
	AudioDir      string
	AWSRegion     string
	Voice         string
	Engine        string
	OpenAIModel   string
	OpenAIVoice   string
	OnlyUsed      bool
	Force         bool

	// Export flags
	PureChinese bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Readings:      "data/unihan/Unihan_Readings.txt",
		Variants:      "data/unihan/Unihan_Variants.txt",
		CEDICT:        "data/cedict/cedict_ts.u8",
		HSKList:       "data/hsk/charlist.txt",
		Charset:       "data/character_set/chinese_characters.csv",
		Corpus:        "data/sentences/cmn_sentences.csv",
		Refined:       "data/sentences/refined_pinyin.json",
		Report:        "data/sentences/pinyin_changes.json",
		Syllables:     "data/audio/syllables.json",
		MaxExamples:   3,
		ReportEvery:   5000,
		ChatProvider:  "openai",
		Checkpoint:    "data/checkpoint.db",
		BatchSize:     10,
		AudioProvider: "polly",
		AudioDir:      "data/audio/syllables",
		AWSRegion:     "us-east-1",
		Voice:         "Zhiyu",
		Engine:        "neural",
		OpenAIModel:   "gpt-4o-mini-tts",
		OpenAIVoice:   "alloy",
	}
}
