package llm

import (
	"context"
	"fmt"
	"testing"
)

type trackedProvider struct {
	mockProvider
	usage Usage
}

func (p *trackedProvider) Usage() Usage { return p.usage }

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &mockProvider{reply: func(prompt string) (string, error) {
		return "", fmt.Errorf("boom")
	}}
	p := NewBreakerProvider(inner)

	for i := 0; i < 5; i++ {
		if _, err := p.Complete(context.Background(), "hi"); err == nil {
			t.Fatal("expected error")
		}
	}

	// breaker is open now, the inner provider must not be called again
	before := inner.calls
	if _, err := p.Complete(context.Background(), "hi"); err == nil {
		t.Fatal("expected open-breaker error")
	}
	if inner.calls != before {
		t.Errorf("inner provider called while breaker open")
	}
}

func TestBreakerUsageForwarding(t *testing.T) {
	tracked := &trackedProvider{usage: Usage{PromptTokens: 7, CompletionTokens: 3}}
	p := NewBreakerProvider(tracked)

	if got := p.Usage(); got.PromptTokens != 7 || got.CompletionTokens != 3 {
		t.Errorf("Usage = %+v, want forwarded counts", got)
	}

	plain := NewBreakerProvider(&mockProvider{})
	if got := plain.Usage(); got != (Usage{}) {
		t.Errorf("Usage = %+v, want zero for non-tracking provider", got)
	}
}
