package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/mlutz/hancorpus/internal/archive"
	"codeberg.org/mlutz/hancorpus/internal/charset"
	"codeberg.org/mlutz/hancorpus/internal/export"
	"codeberg.org/mlutz/hancorpus/internal/hsk"
	"codeberg.org/mlutz/hancorpus/internal/llm"
	"codeberg.org/mlutz/hancorpus/internal/pinyin"
	"codeberg.org/mlutz/hancorpus/internal/sentences"
	"codeberg.org/mlutz/hancorpus/internal/tts"
)

// scriptMap extracts the per-character script type lookup the sentence
// classifier needs.
func scriptMap(records []charset.Record) map[rune]string {
	scripts := make(map[rune]string, len(records))
	for _, rec := range records {
		for _, r := range rec.Char {
			scripts[r] = rec.ScriptType
		}
	}
	return scripts
}

// levelMap extracts the per-character HSK level lookup.
func levelMap(records []charset.Record) map[rune]string {
	levels := make(map[rune]string)
	for _, rec := range records {
		if rec.HSKLevel == "" {
			continue
		}
		for _, r := range rec.Char {
			levels[r] = rec.HSKLevel
		}
	}
	return levels
}

func openCheckpoint(path string) (*llm.Checkpoint, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create checkpoint directory: %w", err)
		}
	}
	return llm.OpenCheckpoint(path)
}

func newBuildCommand(flags *Flags) *cobra.Command {
	var archivePrevious bool
	var step int

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the character dataset from Unihan, CC-CEDICT and HSK",
		RunE: func(cmd *cobra.Command, args []string) error {
			if archivePrevious {
				archived, err := archive.ArchiveArtifact(flags.Charset)
				if err != nil {
					return err
				}
				if archived != "" {
					fmt.Printf("Previous dataset archived to %s\n", archived)
				}
			}

			if flags.Download {
				if _, err := os.Stat(flags.HSKList); os.IsNotExist(err) {
					fmt.Printf("Downloading HSK character list to %s...\n", flags.HSKList)
					if err := hsk.Download(cmd.Context(), flags.HSKList); err != nil {
						return err
					}
				}
			}

			var records []charset.Record
			var err error
			if step > 0 {
				records, err = runBuildStep(flags, step)
			} else {
				records, err = charset.Build(charset.SourcePaths{
					UnihanReadings: flags.Readings,
					UnihanVariants: flags.Variants,
					CEDICT:         flags.CEDICT,
					HSKCharlist:    flags.HSKList,
				}, flags.MaxExamples)
			}
			if err != nil {
				return err
			}

			removals := charset.CleanCorrupted(records)
			if len(removals) > 0 {
				fmt.Printf("Removed %d corrupted readings\n", len(removals))
			}
			if fixed := charset.FixToneNumbers(records); fixed > 0 {
				fmt.Printf("Converted tone numbers to tone marks for %d characters\n", fixed)
			}

			if err := charset.Save(flags.Charset, records); err != nil {
				return err
			}
			fmt.Printf("Wrote %d characters to %s\n", len(records), flags.Charset)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.Readings, "readings", flags.Readings, "Unihan_Readings.txt path")
	cmd.Flags().StringVar(&flags.Variants, "variants", flags.Variants, "Unihan_Variants.txt path")
	cmd.Flags().StringVar(&flags.CEDICT, "cedict", flags.CEDICT, "CC-CEDICT dictionary path")
	cmd.Flags().StringVar(&flags.HSKList, "hsk-list", flags.HSKList, "HSK 3.0 character list path")
	cmd.Flags().BoolVar(&flags.Download, "download", false, "Download the HSK character list if missing")
	cmd.Flags().IntVar(&flags.MaxExamples, "max-examples", flags.MaxExamples, "Example compounds per character")
	cmd.Flags().BoolVar(&archivePrevious, "archive", false, "Archive the previous dataset before overwriting")
	cmd.Flags().IntVar(&step, "step", 0, "Run a single build step 1-6 against the existing dataset")

	return cmd
}

// runBuildStep applies one pipeline step to the saved dataset. Step 1
// recreates the base range and discards the existing file's contents.
func runBuildStep(flags *Flags, step int) ([]charset.Record, error) {
	if step == 1 {
		return charset.BuildBase(), nil
	}

	records, err := charset.Load(flags.Charset)
	if err != nil {
		return nil, fmt.Errorf("step %d needs an existing dataset: %w", step, err)
	}

	switch step {
	case 2:
		filled, err := charset.AddReadings(records, flags.Readings)
		if err != nil {
			return nil, err
		}
		fmt.Printf("%d characters with readings\n", filled)
	case 3:
		filled, err := charset.AddGlosses(records, flags.CEDICT, flags.MaxExamples)
		if err != nil {
			return nil, err
		}
		fmt.Printf("%d characters with glosses\n", filled)
	case 4:
		if _, err := charset.AddVariants(records, flags.Variants); err != nil {
			return nil, err
		}
	case 5:
		direct, propagated, err := charset.AddHSKLevels(records, flags.HSKList)
		if err != nil {
			return nil, err
		}
		fmt.Printf("%d direct, %d propagated HSK assignments\n", direct, propagated)
	case 6:
		enriched := charset.AddHeteronyms(records)
		fmt.Printf("%d characters enriched\n", enriched)
	default:
		return nil, fmt.Errorf("invalid step %d: want 1-6", step)
	}

	return records, nil
}

func newClassifyCommand(flags *Flags) *cobra.Command {
	var tatoeba string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify sentences as simplified, traditional, neutral or ambiguous",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := charset.Load(flags.Charset)
			if err != nil {
				return err
			}

			var corpus []sentences.Sentence
			if tatoeba != "" {
				corpus, err = sentences.LoadTatoeba(tatoeba)
				if err != nil {
					return err
				}
				fmt.Printf("Imported %d sentences from %s\n", len(corpus), tatoeba)
			} else {
				corpus, err = sentences.Load(flags.Corpus)
				if err != nil {
					return err
				}
			}

			dist := sentences.ClassifyAll(corpus, scriptMap(records))

			if err := sentences.Save(flags.Corpus, corpus); err != nil {
				return err
			}

			fmt.Printf("Classified %d sentences:\n", len(corpus))
			for _, script := range []string{
				sentences.ScriptSimplified, sentences.ScriptTraditional,
				sentences.ScriptNeutral, sentences.ScriptAmbiguous, sentences.ScriptUnknown,
			} {
				if n := dist[script]; n > 0 {
					fmt.Printf("  %-12s %d\n", script, n)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tatoeba, "tatoeba", "", "Import sentences from a Tatoeba TSV export first")
	return cmd
}

func newAnnotateCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Annotate sentences with per-character pinyin",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := sentences.Load(flags.Corpus)
			if err != nil {
				return err
			}

			annotator, err := sentences.NewAnnotator(flags.SegDict)
			if err != nil {
				return err
			}

			annotator.AnnotateAll(corpus, flags.ReportEvery)

			if err := sentences.Save(flags.Corpus, corpus); err != nil {
				return err
			}
			fmt.Printf("Annotated %d sentences\n", len(corpus))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.SegDict, "seg-dict", flags.SegDict, "Segmenter dictionary path (empty for per-character cuts)")
	cmd.Flags().IntVar(&flags.ReportEvery, "report-every", flags.ReportEvery, "Progress interval in sentences")

	return cmd
}

func newHSKCommand(flags *Flags) *cobra.Command {
	var statsOut string

	cmd := &cobra.Command{
		Use:   "hsk",
		Short: "Grade sentences by HSK difficulty level",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := charset.Load(flags.Charset)
			if err != nil {
				return err
			}
			corpus, err := sentences.Load(flags.Corpus)
			if err != nil {
				return err
			}

			dist := sentences.GradeAll(corpus, levelMap(records))

			if err := sentences.Save(flags.Corpus, corpus); err != nil {
				return err
			}

			fmt.Printf("Graded %d sentences:\n", len(corpus))
			for _, level := range []string{"1", "2", "3", "4", "5", "6", hsk.Level79, hsk.BeyondHSK} {
				if n := dist[level]; n > 0 {
					fmt.Printf("  HSK %-10s %d\n", level, n)
				}
			}

			if statsOut != "" {
				if err := sentences.Collect(corpus).WriteJSON(statsOut); err != nil {
					return err
				}
				fmt.Printf("Distribution written to %s\n", statsOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&statsOut, "output", "o", "", "Also write distribution JSON to this path")
	return cmd
}

func newTranslateCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate sentences to English with a chat model",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := sentences.Load(flags.Corpus)
			if err != nil {
				return err
			}

			provider, err := newChatProvider(flags)
			if err != nil {
				return err
			}

			checkpoint, err := openCheckpoint(flags.Checkpoint)
			if err != nil {
				return err
			}
			if checkpoint != nil {
				defer checkpoint.Close()
			}

			translator := llm.NewTranslator(provider, checkpoint, llm.BatchConfig{BatchSize: flags.BatchSize})
			translated, err := translator.Run(cmd.Context(), corpus)
			if translated > 0 {
				if saveErr := sentences.Save(flags.Corpus, corpus); saveErr != nil {
					return saveErr
				}
				fmt.Printf("Saved %d new translations\n", translated)
			}
			return err
		},
	}

	addChatFlags(cmd, flags)
	return cmd
}

func newRefineCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refine",
		Short: "Refine per-character pinyin with a chat model",
		Long: `refine sends annotated sentences to a chat model that sees full
sentence context, catching heteronym readings the per-character converter
cannot disambiguate. The refined corpus is written to a separate JSON file
for review with the diff command; the corpus CSV is not modified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := sentences.Load(flags.Corpus)
			if err != nil {
				return err
			}

			items := make([]llm.RefineItem, len(corpus))
			for i, s := range corpus {
				items[i] = llm.RefineItem{
					ID:    i,
					Text:  s.Text,
					Pairs: sentences.ParsePairs(s.Pairs),
				}
			}

			provider, err := newChatProvider(flags)
			if err != nil {
				return err
			}

			checkpoint, err := openCheckpoint(flags.Checkpoint)
			if err != nil {
				return err
			}
			if checkpoint != nil {
				defer checkpoint.Close()
			}

			refiner := llm.NewRefiner(provider, checkpoint, llm.BatchConfig{BatchSize: flags.BatchSize})
			failed, err := refiner.Run(cmd.Context(), items)
			if err != nil {
				return err
			}

			if err := llm.WriteRefineOutput(flags.Refined, flags.Corpus, items, failed); err != nil {
				return err
			}
			fmt.Printf("Wrote refined pinyin for %d sentences to %s", len(items), flags.Refined)
			if len(failed) > 0 {
				fmt.Printf(" (%d failed batches kept original pinyin)", len(failed))
			}
			fmt.Println()
			return nil
		},
	}

	addChatFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.Refined, "out", flags.Refined, "Refinement output JSON path")
	return cmd
}

func addChatFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().StringVar(&flags.ChatProvider, "provider", flags.ChatProvider, "Chat provider: openai or gemini")
	cmd.Flags().StringVar(&flags.ChatModel, "model", "", "Chat model (default depends on provider)")
	cmd.Flags().StringVar(&flags.Checkpoint, "checkpoint", flags.Checkpoint, "Checkpoint database path (empty to disable resume)")
	cmd.Flags().IntVar(&flags.BatchSize, "batch-size", flags.BatchSize, "Sentences per request")
}

func newDiffCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare refined pinyin against the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := sentences.Load(flags.Corpus)
			if err != nil {
				return err
			}
			refined, err := llm.ReadRefineOutput(flags.Refined)
			if err != nil {
				return err
			}

			report := llm.Compare(corpus, refined)
			if err := report.WriteReport(flags.Report); err != nil {
				return err
			}

			fmt.Printf("Compared %d characters in %d sentences\n",
				report.CharsCompared, report.TotalSentences)
			fmt.Printf("%d changes in %d sentences, report written to %s\n",
				report.CharsChanged, report.SentencesChanged, flags.Report)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.Refined, "refined", flags.Refined, "Refinement output JSON path")
	cmd.Flags().StringVar(&flags.Report, "out", flags.Report, "Change report JSON path")
	return cmd
}

func newApplyCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply verified pinyin changes to the corpus",
		Long: `apply takes a change report produced by diff and applies changes for
manually verified characters only. Other changes stay in the report until
their characters are reviewed and added to the verified list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := sentences.Load(flags.Corpus)
			if err != nil {
				return err
			}
			report, err := llm.ReadReport(flags.Report)
			if err != nil {
				return err
			}

			result := llm.Apply(corpus, report, flags.Limit, flags.DryRun)
			fmt.Printf("Applied %d changes, skipped %d\n", result.Applied, result.Skipped)

			if flags.DryRun {
				fmt.Println("Dry run, corpus not modified")
				return nil
			}
			return sentences.Save(flags.Corpus, corpus)
		},
	}

	cmd.Flags().StringVar(&flags.Report, "report", flags.Report, "Change report JSON path")
	cmd.Flags().IntVar(&flags.Limit, "limit", 0, "Apply at most this many changes (0 for all)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Show changes without modifying the corpus")
	return cmd
}

func newSyllablesCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "syllables",
		Short: "Enumerate the Mandarin syllable inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			used := make(map[string]bool)
			if corpus, err := sentences.Load(flags.Corpus); err == nil {
				used = tts.DatasetSyllables(corpus)
			} else {
				fmt.Fprintf(os.Stderr, "Warning: no corpus at %s, usage marks skipped\n", flags.Corpus)
			}

			enum, err := tts.Enumerate(flags.Readings, used)
			if err != nil {
				return err
			}
			if err := enum.WriteJSON(flags.Syllables); err != nil {
				return err
			}

			fmt.Printf("Enumerated %d syllables (%d used in corpus, %.1f%% coverage)\n",
				enum.Metadata.TotalSyllables, enum.Metadata.UsedInDataset, enum.Metadata.CoveragePct)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.Readings, "readings", flags.Readings, "Unihan_Readings.txt path")
	cmd.Flags().StringVar(&flags.Syllables, "out", flags.Syllables, "Syllable inventory JSON path")
	return cmd
}

func newAudioCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audio",
		Short: "Synthesize syllable pronunciation audio",
		RunE: func(cmd *cobra.Command, args []string) error {
			enum, err := tts.ReadEnumeration(flags.Syllables)
			if err != nil {
				return err
			}

			config := &tts.Config{
				Provider:    flags.AudioProvider,
				OutputDir:   flags.AudioDir,
				AWSRegion:   flags.AWSRegion,
				Voice:       flags.Voice,
				Engine:      flags.Engine,
				OpenAIKey:   GetOpenAIKey(),
				OpenAIModel: flags.OpenAIModel,
				OpenAIVoice: flags.OpenAIVoice,
			}

			provider, err := tts.NewProvider(cmd.Context(), config)
			if err != nil {
				return err
			}
			if config.Provider == "polly" && config.OpenAIKey != "" {
				fallback, err := tts.NewOpenAIProvider(config)
				if err == nil {
					provider = tts.NewProviderWithFallback(provider, fallback)
				}
			}
			if err := provider.IsAvailable(); err != nil {
				return err
			}

			result, err := tts.Generate(cmd.Context(), provider, enum, tts.GenerateOptions{
				OutputDir: flags.AudioDir,
				OnlyUsed:  flags.OnlyUsed,
				Limit:     flags.Limit,
				Force:     flags.Force,
				Delay:     200 * time.Millisecond,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Generated %d files, skipped %d existing\n", result.Generated, result.Skipped)
			if len(result.Failed) > 0 {
				fmt.Fprintf(os.Stderr, "Warning: %d syllables failed: %v\n", len(result.Failed), result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.Syllables, "syllables", flags.Syllables, "Syllable inventory JSON path")
	cmd.Flags().StringVar(&flags.AudioDir, "audio-dir", flags.AudioDir, "Audio output directory")
	cmd.Flags().StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "Audio provider: polly or openai")
	cmd.Flags().StringVar(&flags.AWSRegion, "aws-region", flags.AWSRegion, "AWS region for Polly")
	cmd.Flags().StringVar(&flags.Voice, "voice", flags.Voice, "Polly voice id")
	cmd.Flags().StringVar(&flags.Engine, "engine", flags.Engine, "Polly engine: neural or standard")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model for the fallback provider")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI TTS voice for the fallback provider")
	cmd.Flags().BoolVar(&flags.OnlyUsed, "only-used", false, "Only synthesize syllables the corpus uses")
	cmd.Flags().IntVar(&flags.Limit, "limit", 0, "Stop after this many new files (0 for all)")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "Regenerate existing files")
	return cmd
}

func newExportCommand(flags *Flags) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export JSON bundles for the web app",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := charset.Load(flags.Charset)
			if err != nil {
				return err
			}
			corpus, err := sentences.Load(flags.Corpus)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			bundle := export.BuildSentenceBundle(corpus, export.CharIndex(records), export.SentenceOptions{
				Limit:           flags.Limit,
				PureChineseOnly: flags.PureChinese,
			})
			sentencesPath := filepath.Join(outDir, "sentences.json")
			if err := export.WriteJSON(sentencesPath, bundle); err != nil {
				return err
			}
			fmt.Printf("Wrote %d sentences to %s (%d filtered out)\n",
				bundle.Metadata.TotalSentences, sentencesPath, bundle.Metadata.FilteredOut)

			chars := export.BuildCharacterBundle(records)
			charsPath := filepath.Join(outDir, "characters.json")
			if err := export.WriteJSON(charsPath, chars); err != nil {
				return err
			}
			fmt.Printf("Wrote %d characters to %s\n", chars.Metadata.TotalCharacters, charsPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "app/public/data", "Output directory")
	cmd.Flags().IntVar(&flags.Limit, "limit", 0, "Max sentences to export (0 for all)")
	cmd.Flags().BoolVar(&flags.PureChinese, "pure-chinese", false, "Only export sentences without foreign words")
	return cmd
}

func newStatsCommand(flags *Flags) *cobra.Command {
	var statsOut string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print corpus statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := sentences.Load(flags.Corpus)
			if err != nil {
				return err
			}

			stats := sentences.Collect(corpus)
			stats.Print()

			if statsOut != "" {
				if err := stats.WriteJSON(statsOut); err != nil {
					return err
				}
				fmt.Printf("Statistics written to %s\n", statsOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&statsOut, "output", "o", "", "Also write statistics JSON to this path")
	return cmd
}

func newValidateCommand(flags *Flags) *cobra.Command {
	var audioDir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate syllable and audio coverage",
		Long: `validate checks that every syllable used by the corpus and the
character dataset has an inventory entry, and that each entry has an audio
file when an audio directory is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			enum, err := tts.ReadEnumeration(flags.Syllables)
			if err != nil {
				return err
			}

			required := make(map[string]bool)

			if corpus, err := sentences.Load(flags.Corpus); err == nil {
				for s := range tts.DatasetSyllables(corpus) {
					required[s] = true
				}
			}

			if records, err := charset.Load(flags.Charset); err == nil {
				for _, rec := range records {
					for _, reading := range pinyin.ParseField(rec.Pinyins) {
						required[pinyin.Canonical(pinyin.MarkToNumber(reading.Syllable))] = true
					}
				}
			}

			coverage := tts.ValidateCoverage(required, enum, audioDir)

			fmt.Printf("Checked %d syllables\n", coverage.Checked)
			if coverage.Complete() {
				fmt.Println("Coverage complete")
				return nil
			}

			if len(coverage.MissingEntries) > 0 {
				fmt.Printf("Missing from inventory (%d): %v\n",
					len(coverage.MissingEntries), coverage.MissingEntries)
			}
			if len(coverage.MissingAudio) > 0 {
				fmt.Printf("Missing audio files (%d): %v\n",
					len(coverage.MissingAudio), coverage.MissingAudio)
			}
			return fmt.Errorf("coverage incomplete: %d inventory gaps, %d missing audio files",
				len(coverage.MissingEntries), len(coverage.MissingAudio))
		},
	}

	cmd.Flags().StringVar(&flags.Syllables, "syllables", flags.Syllables, "Syllable inventory JSON path")
	cmd.Flags().StringVar(&audioDir, "audio-dir", "", "Audio directory to check (empty to skip file checks)")
	return cmd
}

func newFixQuotesCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "fixquotes",
		Short: "Strip spurious surrounding quotes from translations",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := sentences.Load(flags.Corpus)
			if err != nil {
				return err
			}

			fixed := sentences.FixAllQuotes(corpus)
			if fixed == 0 {
				fmt.Println("No translations needed fixing")
				return nil
			}

			if err := sentences.Save(flags.Corpus, corpus); err != nil {
				return err
			}
			fmt.Printf("Fixed %d translations\n", fixed)
			return nil
		},
	}
}
