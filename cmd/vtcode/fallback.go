package main

import (
	"context"
	"fmt"

	"github.com/vtcode/vtcode/internal/agent"
)

// fallbackProvider tries primary first and, if it refuses the request
// outright (Complete returns a synchronous error), tries each provider in
// chain in order. It does not attempt failover mid-stream; that is the
// provider layer's own circuit-breaker/cooldown responsibility.
type fallbackProvider struct {
	primary agent.LLMProvider
	chain   []agent.LLMProvider
}

func (f *fallbackProvider) Complete(ctx context.Context, req *agent.CompletionRequest) (<-chan *agent.CompletionChunk, error) {
	stream, err := f.primary.Complete(ctx, req)
	if err == nil {
		return stream, nil
	}
	lastErr := err
	for _, p := range f.chain {
		stream, err := p.Complete(ctx, req)
		if err == nil {
			return stream, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("all providers failed, last error: %w", lastErr)
}

func (f *fallbackProvider) Name() string {
	return f.primary.Name()
}

func (f *fallbackProvider) Models() []agent.Model {
	return f.primary.Models()
}

func (f *fallbackProvider) SupportsTools() bool {
	return f.primary.SupportsTools()
}
