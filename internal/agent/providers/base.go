package providers

import (
	"context"
	"sync"
	"time"
)

// BaseProvider holds shared retry configuration for LLM providers.
type BaseProvider struct {
	name       string
	maxRetries int
	retryDelay time.Duration
}

// NewBaseProvider creates a base provider with sane defaults.
func NewBaseProvider(name string, maxRetries int, retryDelay time.Duration) BaseProvider {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	return BaseProvider{
		name:       name,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// Retry executes op with linear backoff if isRetryable returns true.
func (b *BaseProvider) Retry(ctx context.Context, isRetryable func(error) bool, op func() error) error {
	if op == nil {
		return nil
	}
	var lastErr error
	for attempt := 1; attempt <= b.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := op(); err == nil {
			return nil
		} else {
			lastErr = err
			if isRetryable == nil || !isRetryable(err) {
				return err
			}
			if attempt >= b.maxRetries {
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(b.retryDelay * time.Duration(attempt)):
			}
		}
	}
	return lastErr
}

// DefaultStreamFailureThreshold is the number of consecutive streaming
// failures a StreamCircuitBreaker tolerates before it opens.
const DefaultStreamFailureThreshold = 5

// DefaultStreamCooldown is how long a StreamCircuitBreaker stays open
// before allowing another streaming attempt.
const DefaultStreamCooldown = 300 * time.Second

// StreamCircuitBreaker tracks consecutive streaming failures for a
// provider and, once a threshold is crossed, forces callers onto a
// non-streaming fallback for a cooldown window rather than retrying a
// transport that's been failing. Shared across providers so every
// provider in this package degrades the same way under a flaky upstream.
type StreamCircuitBreaker struct {
	mu        sync.Mutex
	failures  int
	threshold int
	cooldown  time.Duration
	openedAt  time.Time
}

// NewStreamCircuitBreaker builds a breaker with the given threshold and
// cooldown, defaulting to DefaultStreamFailureThreshold/DefaultStreamCooldown
// when either is zero or negative.
func NewStreamCircuitBreaker(threshold int, cooldown time.Duration) *StreamCircuitBreaker {
	if threshold <= 0 {
		threshold = DefaultStreamFailureThreshold
	}
	if cooldown <= 0 {
		cooldown = DefaultStreamCooldown
	}
	return &StreamCircuitBreaker{threshold: threshold, cooldown: cooldown}
}

// AllowStream reports whether a streaming attempt should be made right
// now. It flips back closed once the cooldown has elapsed since the
// breaker opened, giving the upstream a chance to recover.
func (b *StreamCircuitBreaker) AllowStream() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failures < b.threshold {
		return true
	}
	if time.Since(b.openedAt) >= b.cooldown {
		b.failures = 0
		return true
	}
	return false
}

// RecordSuccess resets the failure streak.
func (b *StreamCircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
}

// RecordFailure bumps the failure streak, opening the breaker once it
// crosses the threshold.
func (b *StreamCircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	if b.failures == b.threshold {
		b.openedAt = time.Now()
	}
}

// Open reports whether the breaker is currently forcing the non-stream
// fallback path.
func (b *StreamCircuitBreaker) Open() bool {
	return !b.AllowStream()
}
