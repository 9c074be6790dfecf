package resilience

import (
	"context"
	"sync"
	"time"
)

// RateLimiterConfig configures the token bucket.
type RateLimiterConfig struct {
	// Capacity is the maximum number of tokens the bucket holds.
	// Default: 10
	Capacity float64

	// RefillRate is how many tokens are added per second.
	// Default: 5
	RefillRate float64
}

// RateLimiter is a token bucket. Tokens refill continuously at
// RefillRate per second and never exceed Capacity.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Context: Acquire honors cancellation while waiting.
// - Fairness: waiting callers are not queued; FIFO ordering holds only
//   when callers are serialized upstream.
type RateLimiter struct {
	config RateLimiterConfig

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter with a full bucket.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	// Apply defaults
	if config.Capacity <= 0 {
		config.Capacity = 10
	}
	if config.RefillRate <= 0 {
		config.RefillRate = 5
	}

	return &RateLimiter{
		config:     config,
		tokens:     config.Capacity,
		lastRefill: time.Now(),
	}
}

// Allow takes n tokens if available, without waiting.
func (rl *RateLimiter) Allow(n float64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refillLocked()
	if rl.tokens >= n {
		rl.tokens -= n
		return true
	}
	return false
}

// Acquire blocks until n tokens are available, then takes them.
//
// When the bucket is short, it sleeps (n - tokens) / refillRate seconds
// and retries, looping until satisfied or the context is canceled.
func (rl *RateLimiter) Acquire(ctx context.Context, n float64) error {
	if n > rl.config.Capacity {
		return ErrAcquireTooLarge
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rl.mu.Lock()
		rl.refillLocked()
		if rl.tokens >= n {
			rl.tokens -= n
			rl.mu.Unlock()
			return nil
		}
		wait := time.Duration((n - rl.tokens) / rl.config.RefillRate * float64(time.Second))
		rl.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Execute acquires one token, waiting if necessary, then runs op.
func (rl *RateLimiter) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := rl.Acquire(ctx, 1); err != nil {
		return err
	}
	return op(ctx)
}

// RateLimiterSnapshot reports the bucket's observable state.
type RateLimiterSnapshot struct {
	Tokens     float64
	Capacity   float64
	RefillRate float64
	LastRefill time.Time
}

// Snapshot returns the current bucket state after refilling.
func (rl *RateLimiter) Snapshot() RateLimiterSnapshot {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refillLocked()
	return RateLimiterSnapshot{
		Tokens:     rl.tokens,
		Capacity:   rl.config.Capacity,
		RefillRate: rl.config.RefillRate,
		LastRefill: rl.lastRefill,
	}
}

// Tokens returns the number of available tokens.
func (rl *RateLimiter) Tokens() float64 {
	return rl.Snapshot().Tokens
}

func (rl *RateLimiter) refillLocked() {
	now := time.Now()
	elapsed := now.Sub(rl.lastRefill)
	rl.lastRefill = now

	rl.tokens += elapsed.Seconds() * rl.config.RefillRate
	if rl.tokens > rl.config.Capacity {
		rl.tokens = rl.config.Capacity
	}
}
