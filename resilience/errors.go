package resilience

import "errors"

// Sentinel errors for resilience operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker rejects a call
	// without attempting it.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrAcquireTooLarge is returned when a rate limiter acquisition asks
	// for more tokens than the bucket can ever hold.
	ErrAcquireTooLarge = errors.New("resilience: acquisition exceeds bucket capacity")

	// ErrPoolClosed is returned when a task is submitted to a closed pool.
	ErrPoolClosed = errors.New("resilience: pool is closed")

	// ErrTimeout is returned when an operation exceeds its deadline.
	ErrTimeout = errors.New("resilience: operation timed out")
)
