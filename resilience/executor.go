package resilience

import (
	"context"
	"time"
)

// Executor composes the resilience primitives that govern one
// provider's calls.
type Executor struct {
	circuitBreaker *CircuitBreaker
	rateLimiter    *RateLimiter
	pool           *Pool
	retry          *Retry
	timeout        *Timeout
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// NewExecutor creates a new resilience executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithCircuitBreaker gates calls through cb.
func WithCircuitBreaker(cb *CircuitBreaker) ExecutorOption {
	return func(e *Executor) {
		e.circuitBreaker = cb
	}
}

// WithRateLimiter makes calls acquire a token from rl before running.
func WithRateLimiter(rl *RateLimiter) ExecutorOption {
	return func(e *Executor) {
		e.rateLimiter = rl
	}
}

// WithPool runs calls through the bounded concurrency pool.
func WithPool(p *Pool) ExecutorOption {
	return func(e *Executor) {
		e.pool = p
	}
}

// WithRetry adds retry logic around the call.
func WithRetry(r *Retry) ExecutorOption {
	return func(e *Executor) {
		e.retry = r
	}
}

// WithTimeout bounds each individual attempt.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.timeout = NewTimeout(TimeoutConfig{Timeout: timeout})
	}
}

// WithTimeoutConfig bounds each individual attempt with a custom config.
func WithTimeoutConfig(t *Timeout) ExecutorOption {
	return func(e *Executor) {
		e.timeout = t
	}
}

// Execute runs the operation through all configured primitives.
//
// The admission order is:
//  1. Circuit breaker - rejects without consuming any other resource
//     while the dependency is known bad.
//  2. Rate limiter - waits for a token.
//  3. Pool - waits for a concurrency slot.
//  4. Retry - retries failed attempts with backoff.
//  5. Timeout - bounds each individual attempt (innermost).
//
// The circuit breaker observes the outcome of the whole retried call,
// so one Execute counts as one attempt toward its failure threshold.
func (e *Executor) Execute(ctx context.Context, op func(context.Context) error) error {
	execute := op

	if e.timeout != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.timeout.Execute(ctx, inner)
		}
	}

	if e.retry != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.retry.Execute(ctx, inner)
		}
	}

	if e.pool != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.pool.Execute(ctx, inner)
		}
	}

	if e.rateLimiter != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.rateLimiter.Execute(ctx, inner)
		}
	}

	if e.circuitBreaker != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.circuitBreaker.Execute(ctx, inner)
		}
	}

	return execute(ctx)
}
