package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/mlutz/hancorpus/internal"
	"codeberg.org/mlutz/hancorpus/internal/llm"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hancorpus",
		Short: "Mandarin learning corpus builder",
		Long: `hancorpus builds a Mandarin-learning content corpus.

It assembles a character dictionary from Unihan, CC-CEDICT and the HSK 3.0
character lists, annotates sentence corpora with per-character pinyin,
classifies sentences by script type and difficulty, synthesizes syllable
pronunciation audio with AWS Polly, and exports JSON bundles for the web app.

Examples:
  hancorpus build --download    # Build the character dictionary
  hancorpus annotate            # Add per-character pinyin to the corpus
  hancorpus export --limit 100  # Export the first 100 sentences`,
		Version: internal.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.ListModels {
				return llm.ListModels(cmd.Context(), GetOpenAIKey())
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.hancorpus.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.Charset, "charset", flags.Charset, "Character dataset CSV")
	rootCmd.PersistentFlags().StringVar(&flags.Corpus, "corpus", flags.Corpus, "Sentence corpus CSV")
	rootCmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")

	viper.BindPFlag("data.charset", rootCmd.PersistentFlags().Lookup("charset"))
	viper.BindPFlag("data.corpus", rootCmd.PersistentFlags().Lookup("corpus"))

	rootCmd.AddCommand(
		newBuildCommand(flags),
		newClassifyCommand(flags),
		newAnnotateCommand(flags),
		newHSKCommand(flags),
		newTranslateCommand(flags),
		newRefineCommand(flags),
		newDiffCommand(flags),
		newApplyCommand(flags),
		newSyllablesCommand(flags),
		newAudioCommand(flags),
		newExportCommand(flags),
		newStatsCommand(flags),
		newValidateCommand(flags),
		newFixQuotesCommand(flags),
	)

	return rootCmd
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hancorpus")
	}

	viper.SetEnvPrefix("HANCORPUS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("llm.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("llm.gemini_key")
}

// newChatProvider builds the configured chat backend wrapped in a circuit
// breaker, so a dead API stops a long batch run early.
func newChatProvider(flags *Flags) (llm.ChatProvider, error) {
	var inner llm.ChatProvider

	switch flags.ChatProvider {
	case "openai":
		inner = llm.NewOpenAIProvider(llm.Options{APIKey: GetOpenAIKey(), Model: flags.ChatModel})
	case "gemini":
		inner = llm.NewGeminiProvider(llm.Options{APIKey: GetGeminiKey(), Model: flags.ChatModel})
	default:
		return nil, fmt.Errorf("unknown chat provider: %s", flags.ChatProvider)
	}

	if !inner.IsAvailable() {
		return nil, fmt.Errorf("%s provider not configured: API key missing", inner.Name())
	}

	return llm.NewBreakerProvider(inner), nil
}
