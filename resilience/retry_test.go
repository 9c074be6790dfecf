package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewRetry_Defaults(t *testing.T) {
	r := NewRetry(RetryConfig{})

	if r.config.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", r.config.MaxAttempts)
	}
	if r.config.BaseDelay != time.Second {
		t.Errorf("BaseDelay = %v, want 1s", r.config.BaseDelay)
	}
	if r.config.MaxDelay != 10*time.Second {
		t.Errorf("MaxDelay = %v, want 10s", r.config.MaxDelay)
	}
	if r.config.BackoffFactor != 2.0 {
		t.Errorf("BackoffFactor = %f, want 2.0", r.config.BackoffFactor)
	}
}

func TestRetry_SuccessOnFirstAttempt(t *testing.T) {
	r := NewRetry(RetryConfig{MaxAttempts: 3})

	attempts := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})
	if err != nil {
		t.Errorf("Execute() error = %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetry_AtMostMaxAttempts(t *testing.T) {
	r := NewRetry(RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
	})

	attempts := 0
	persistent := errors.New("persistent error")
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return persistent
	})
	if !errors.Is(err, persistent) {
		t.Errorf("Execute() error = %v, want persistent", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRetry_BackoffSchedule(t *testing.T) {
	r := NewRetry(RetryConfig{
		MaxAttempts:   5,
		BaseDelay:     10 * time.Millisecond,
		MaxDelay:      40 * time.Millisecond,
		BackoffFactor: 2,
	})

	var delays []time.Duration
	r.config.OnRetry = func(attempt int, err error, delay time.Duration) {
		delays = append(delays, delay)
	}

	r.Execute(context.Background(), failingOp)

	// min(10ms * 2^(n-1), 40ms): 10, 20, 40, 40.
	want := []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		40 * time.Millisecond,
		40 * time.Millisecond,
	}
	if len(delays) != len(want) {
		t.Fatalf("delays = %v, want %v", delays, want)
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("delays[%d] = %v, want %v", i, delays[i], want[i])
		}
	}
}

func TestRetry_ShouldRetryStopsEarly(t *testing.T) {
	fatal := errors.New("fatal error")
	r := NewRetry(RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
		ShouldRetry: func(err error, attempt int) bool {
			return !errors.Is(err, fatal)
		},
	})

	attempts := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return fatal
	})
	if !errors.Is(err, fatal) {
		t.Errorf("Execute() error = %v, want fatal", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetry_ShouldRetrySeesAttemptNumber(t *testing.T) {
	var seen []int
	r := NewRetry(RetryConfig{
		MaxAttempts: 4,
		BaseDelay:   time.Millisecond,
		ShouldRetry: func(err error, attempt int) bool {
			seen = append(seen, attempt)
			return true
		},
	})

	r.Execute(context.Background(), failingOp)

	// ShouldRetry is consulted after every failure except the last.
	want := []int{1, 2, 3}
	if len(seen) != len(want) {
		t.Fatalf("attempts seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %d, want %d", i, seen[i], want[i])
		}
	}
}

func TestRetry_ContextCanceledDuringBackoff(t *testing.T) {
	r := NewRetry(RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	attempts := 0
	err := r.Execute(ctx, func(ctx context.Context) error {
		attempts++
		return errProvider
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Execute() error = %v, want deadline exceeded", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetry_JitterStaysBounded(t *testing.T) {
	r := NewRetry(RetryConfig{
		MaxAttempts:   3,
		BaseDelay:     8 * time.Millisecond,
		BackoffFactor: 2,
		Jitter:        true,
	})

	for i := 0; i < 20; i++ {
		d := r.delay(1)
		if d < 8*time.Millisecond || d > 10*time.Millisecond {
			t.Fatalf("delay(1) = %v, want [8ms, 10ms]", d)
		}
	}
}

func TestRetry_JitterSubQuarterNanosecondDelay(t *testing.T) {
	r := NewRetry(RetryConfig{
		MaxAttempts:   2,
		BaseDelay:     3 * time.Nanosecond,
		BackoffFactor: 1,
		Jitter:        true,
	})

	// delay/4 truncates to zero here; the jitter term must be skipped,
	// not passed to the random source.
	if d := r.delay(1); d != 3*time.Nanosecond {
		t.Errorf("delay(1) = %v, want 3ns", d)
	}
}
