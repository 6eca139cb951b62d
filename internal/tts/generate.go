package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// GenerateOptions controls a synthesis run.
type GenerateOptions struct {
	OutputDir string
	OnlyUsed  bool          // restrict to syllables the corpus uses
	Limit     int           // stop after this many new files, 0 for all
	Force     bool          // regenerate existing files
	Delay     time.Duration // pause between synthesis calls
}

// GenerateResult summarizes a synthesis run.
type GenerateResult struct {
	Generated int
	Skipped   int
	Failed    []string
}

// Generate synthesizes audio for the inventory. Existing files are skipped
// unless Force is set, which makes interrupted runs resumable by rerunning.
func Generate(ctx context.Context, provider Provider, enum *Enumeration, opts GenerateOptions) (*GenerateResult, error) {
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var todo []Syllable
	for _, s := range enum.Syllables {
		if opts.OnlyUsed && !s.ExistsInDataset {
			continue
		}
		todo = append(todo, s)
	}

	result := &GenerateResult{}

	for i, s := range todo {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if opts.Limit > 0 && result.Generated >= opts.Limit {
			break
		}

		outputFile := filepath.Join(opts.OutputDir, s.Filename+".ogg")

		if !opts.Force {
			if _, err := os.Stat(outputFile); err == nil {
				result.Skipped++
				continue
			}
		}

		fmt.Printf("[%d/%d] %s\n", i+1, len(todo), s.Filename+".ogg")

		if err := provider.GenerateAudio(ctx, s.PinyinTone3, outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to synthesize %s: %v\n", s.PinyinTone3, err)
			result.Failed = append(result.Failed, s.PinyinTone3)
			continue
		}
		result.Generated++

		if opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}

	return result, nil
}
