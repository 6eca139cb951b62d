package llm

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerProvider wraps a ChatProvider with a circuit breaker so a long run
// stops hammering a failing API. After five consecutive failures the
// breaker opens for a minute; probe requests then decide whether to close
// it again.
type BreakerProvider struct {
	inner ChatProvider
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps the given provider.
func NewBreakerProvider(inner ChatProvider) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:        inner.Name(),
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerProvider{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped provider's name
func (p *BreakerProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable reports the wrapped provider's availability
func (p *BreakerProvider) IsAvailable() bool {
	return p.inner.IsAvailable()
}

// Usage forwards to the wrapped provider when it tracks tokens.
func (p *BreakerProvider) Usage() Usage {
	if tracker, ok := p.inner.(UsageTracker); ok {
		return tracker.Usage()
	}
	return Usage{}
}

// Complete runs the request through the circuit breaker.
func (p *BreakerProvider) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := p.cb.Execute(func() (interface{}, error) {
		return p.inner.Complete(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
