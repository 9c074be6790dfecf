package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	// Default: 3
	MaxAttempts int

	// BaseDelay is the delay before the first retry.
	// Default: 1 second
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries.
	// Default: 10 seconds
	MaxDelay time.Duration

	// BackoffFactor multiplies the delay after each failed attempt.
	// Default: 2.0
	BackoffFactor float64

	// Jitter adds up to 25% randomness to delays to prevent thundering
	// herds.
	// Default: false
	Jitter bool

	// ShouldRetry decides whether err on the given attempt (1-based)
	// warrants another try. Returning false surfaces err immediately.
	// Default: all non-nil errors are retried.
	ShouldRetry func(err error, attempt int) bool

	// OnRetry is called before each retry attempt.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Retry implements bounded retry with exponential backoff.
type Retry struct {
	config RetryConfig
}

// NewRetry creates a retry handler.
func NewRetry(config RetryConfig) *Retry {
	// Apply defaults
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.BaseDelay <= 0 {
		config.BaseDelay = time.Second
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 10 * time.Second
	}
	if config.BackoffFactor <= 0 {
		config.BackoffFactor = 2.0
	}
	if config.ShouldRetry == nil {
		config.ShouldRetry = func(err error, attempt int) bool { return err != nil }
	}

	return &Retry{config: config}
}

// Execute runs op, retrying failures per the configured policy. The
// final attempt's error is always surfaced, never retried further.
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt >= r.config.MaxAttempts {
			break
		}
		if !r.config.ShouldRetry(err, attempt) {
			return err
		}

		delay := r.delay(attempt)
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// delay computes min(base * factor^(attempt-1), max), plus jitter.
func (r *Retry) delay(attempt int) time.Duration {
	mult := math.Pow(r.config.BackoffFactor, float64(attempt-1))
	delay := time.Duration(float64(r.config.BaseDelay) * mult)

	if delay > r.config.MaxDelay {
		delay = r.config.MaxDelay
	}

	if r.config.Jitter {
		if d := delay / 4; d > 0 {
			// #nosec G404 -- jitter is non-cryptographic timing variance.
			delay += time.Duration(rand.Int64N(int64(d)))
		}
	}

	return delay
}

// Config returns the retry configuration.
func (r *Retry) Config() RetryConfig {
	return r.config
}
