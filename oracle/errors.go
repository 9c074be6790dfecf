package oracle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonwraymond/oracleops/resilience"
)

// Sentinel errors for routing.
var (
	// ErrNoAdapterAvailable means no registered adapter supports the
	// requested data type (or survives a preferred-provider filter).
	ErrNoAdapterAvailable = errors.New("oracle: no adapter available")
)

// ValidationError means a request (or a recovered response) failed
// validation. It is never retried and never triggers failover.
type ValidationError struct {
	Issues []string
}

// NewValidationError creates a validation error from field issues.
func NewValidationError(issues ...string) *ValidationError {
	return &ValidationError{Issues: issues}
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "oracle: validation failed"
	}
	return "oracle: validation failed: " + strings.Join(e.Issues, "; ")
}

// ProviderError wraps an upstream failure from a named provider.
type ProviderError struct {
	Provider  string
	Err       error
	Retryable bool
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("oracle: provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable reports whether err warrants another attempt against the
// same adapter. Validation failures and circuit rejections never do;
// provider errors carry their own flag; everything else (timeouts,
// transient transport failures) is retryable.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return false
	}
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return false
	}

	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Retryable
	}
	return true
}

// classify maps an error to the result taxonomy.
func classify(err error) ErrorKind {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return ErrorKindValidation
	case errors.Is(err, resilience.ErrTimeout):
		return ErrorKindTimeout
	case errors.Is(err, resilience.ErrCircuitOpen):
		return ErrorKindCircuitOpen
	default:
		return ErrorKindProvider
	}
}
