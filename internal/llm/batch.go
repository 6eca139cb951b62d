package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// BatchConfig tunes the batch loop shared by translation and refinement.
type BatchConfig struct {
	BatchSize  int           // sentences per API call
	MaxRetries int           // attempts per batch
	RetryDelay time.Duration // base backoff, grows linearly per attempt
	RateDelay  time.Duration // pause between successful calls
}

// DefaultBatchConfig returns the settings used for full corpus runs.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		BatchSize:  10,
		MaxRetries: 3,
		RetryDelay: 5 * time.Second,
		RateDelay:  2 * time.Second,
	}
}

func (c BatchConfig) withDefaults() BatchConfig {
	d := DefaultBatchConfig()
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = d.RetryDelay
	}
	if c.RateDelay < 0 {
		c.RateDelay = d.RateDelay
	}
	return c
}

// completeWithRetry calls the provider, retrying transient failures with a
// growing delay. Errors are reported on stderr as they happen.
func completeWithRetry(ctx context.Context, provider ChatProvider, prompt string, cfg BatchConfig) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		reply, err := provider.Complete(ctx, prompt)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		if attempt < cfg.MaxRetries {
			wait := cfg.RetryDelay * time.Duration(attempt)
			fmt.Fprintf(os.Stderr, "Warning: %s request failed (attempt %d/%d): %v, retrying in %s\n",
				provider.Name(), attempt, cfg.MaxRetries, err, wait)

			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", cfg.MaxRetries, lastErr)
}

// pause sleeps for the rate limit delay, honoring cancellation.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
