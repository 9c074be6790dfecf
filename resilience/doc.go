// Package resilience provides the primitives that govern calls to
// unreliable external data providers.
//
// # Primitives
//
//   - Circuit Breaker: stops calling a provider after a run of
//     consecutive failures, then probes recovery with a single trial
//     call.
//
//   - Rate Limiter: a token bucket that blocks callers until capacity
//     refills, keeping request rates inside provider quotas.
//
//   - Pool: a bounded concurrency pool dispatching queued tasks to a
//     fixed set of workers in FIFO order.
//
//   - Retry: bounded attempts with exponential backoff and a
//     per-attempt retryability decision.
//
//   - Timeout: bounds each individual attempt.
//
// # Usage
//
// Each primitive can be used on its own, or composed per provider:
//
//	executor := resilience.NewExecutor(
//	    resilience.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.BreakerConfig{
//	        FailureThreshold: 5,
//	        RecoveryTimeout:  time.Minute,
//	    })),
//	    resilience.WithRateLimiter(resilience.NewRateLimiter(resilience.RateLimiterConfig{
//	        Capacity:   10,
//	        RefillRate: 5,
//	    })),
//	    resilience.WithPool(resilience.NewPool(resilience.PoolConfig{Workers: 4})),
//	    resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{MaxAttempts: 3})),
//	    resilience.WithTimeout(30*time.Second),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return callProvider(ctx)
//	})
package resilience
