package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/oracleops/resilience"
)

func ExampleCircuitBreaker() {
	cb := resilience.NewCircuitBreaker(resilience.BreakerConfig{
		FailureThreshold: 2,
		RecoveryTimeout:  time.Minute,
	})

	unavailable := errors.New("provider unavailable")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := cb.Execute(ctx, func(ctx context.Context) error {
			return unavailable
		})
		fmt.Println(err)
	}

	// Output:
	// provider unavailable
	// provider unavailable
	// resilience: circuit breaker is open
}

func ExampleRateLimiter() {
	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{
		Capacity:   10,
		RefillRate: 5,
	})

	if err := rl.Acquire(context.Background(), 10); err == nil {
		fmt.Println("acquired full bucket")
	}
	fmt.Printf("tokens left: %.0f\n", rl.Tokens())

	// Output:
	// acquired full bucket
	// tokens left: 0
}

func ExampleRetry() {
	r := resilience.NewRetry(resilience.RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
	})

	attempts := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	fmt.Println(err, attempts)
	// Output: <nil> 3
}

func ExampleExecutor() {
	pool := resilience.NewPool(resilience.PoolConfig{Workers: 4})
	defer pool.Close()

	executor := resilience.NewExecutor(
		resilience.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.BreakerConfig{
			FailureThreshold: 5,
			RecoveryTimeout:  30 * time.Second,
		})),
		resilience.WithRateLimiter(resilience.NewRateLimiter(resilience.RateLimiterConfig{
			Capacity:   10,
			RefillRate: 5,
		})),
		resilience.WithPool(pool),
		resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond})),
		resilience.WithTimeout(5*time.Second),
	)

	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		// Call the external provider here.
		return nil
	})
	fmt.Println(err)
	// Output: <nil>
}
