package tts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
)

// PollyProvider implements Provider with AWS Polly. Syllables are spoken
// through the x-amazon-pinyin phoneme alphabet, which takes tone-number
// pinyin directly (neutral tone as 0).
type PollyProvider struct {
	client *polly.Client
	config *Config
}

// syllableRe validates the tone-number form Polly accepts.
var syllableRe = regexp.MustCompile(`^[a-z]+[0-4]$`)

// NewPollyProvider creates a Polly-backed provider using the default AWS
// credential chain.
func NewPollyProvider(ctx context.Context, config *Config) (*PollyProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &PollyProvider{
		client: polly.NewFromConfig(cfg),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *PollyProvider) Name() string {
	return "polly"
}

// IsAvailable verifies the credentials by listing voices.
func (p *PollyProvider) IsAvailable() error {
	_, err := p.client.DescribeVoices(context.Background(), &polly.DescribeVoicesInput{})
	if err != nil {
		return fmt.Errorf("AWS Polly not available: %w", err)
	}
	return nil
}

// ssmlFor wraps a syllable in a phoneme tag. The placeholder character's
// own pronunciation is overridden by the ph attribute.
func ssmlFor(syllable string) string {
	return fmt.Sprintf(`<speak><phoneme alphabet="x-amazon-pinyin" ph="%s">字</phoneme></speak>`, syllable)
}

// GenerateAudio synthesizes one syllable to an OGG Vorbis file.
func (p *PollyProvider) GenerateAudio(ctx context.Context, syllable string, outputFile string) error {
	if !syllableRe.MatchString(syllable) {
		return fmt.Errorf("invalid syllable %q: want tone-number form like ma3 or de0", syllable)
	}

	engine := types.EngineNeural
	if p.config.Engine == "standard" {
		engine = types.EngineStandard
	}

	input := &polly.SynthesizeSpeechInput{
		Text:         aws.String(ssmlFor(syllable)),
		TextType:     types.TextTypeSsml,
		OutputFormat: types.OutputFormatOggVorbis,
		VoiceId:      types.VoiceId(p.config.Voice),
		Engine:       engine,
	}

	out, err := p.client.SynthesizeSpeech(ctx, input)
	if err != nil {
		return fmt.Errorf("Polly synthesis failed for %s: %w", syllable, err)
	}
	defer out.AudioStream.Close()

	dir := filepath.Dir(outputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, out.AudioStream)
	if err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if written == 0 {
		return fmt.Errorf("no audio data received from Polly")
	}

	return nil
}
