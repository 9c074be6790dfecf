package health

import (
	"context"
	"time"
)

// Status grades one checked component of the router: a single provider,
// the provider fleet, or supporting infrastructure such as a cache store.
type Status int

const (
	// StatusHealthy indicates the component is serving queries normally.
	StatusHealthy Status = iota
	// StatusDegraded indicates the component is reachable but impaired,
	// for example a provider with an elevated error rate.
	StatusDegraded
	// StatusUnhealthy indicates the component cannot serve queries.
	StatusUnhealthy
)

// String returns the status as reported on health endpoints.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Detail keys for provider check results. Checkers that grade a
// provider attach these so operators read the same fields regardless
// of which provider is being inspected.
const (
	DetailResponseTimeMs = "response_time_ms"
	DetailErrorRate      = "error_rate"
	DetailUptimePct      = "uptime_pct"
)

// Result is the outcome of one health check.
type Result struct {
	// Status is the graded outcome.
	Status Status

	// Message is a short operator-facing explanation, such as the last
	// probe error or the offending error rate.
	Message string

	// Details carries per-check metadata. Provider checks use the
	// Detail* keys; composite checks map component names to statuses.
	Details map[string]any

	// Duration is how long the check took.
	Duration time.Duration

	// Timestamp is when the check ran.
	Timestamp time.Time

	// Error is set when the check itself failed or timed out.
	Error error
}

// Healthy creates a healthy result.
func Healthy(message string) Result {
	return Result{
		Status:    StatusHealthy,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Degraded creates a degraded result.
func Degraded(message string) Result {
	return Result{
		Status:    StatusDegraded,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Unhealthy creates an unhealthy result.
func Unhealthy(message string, err error) Result {
	return Result{
		Status:    StatusUnhealthy,
		Message:   message,
		Error:     err,
		Timestamp: time.Now(),
	}
}

// WithDetails replaces the details on a result.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// WithProviderStats attaches the standard provider detail keys taken
// from an adapter's live statistics.
func (r Result) WithProviderStats(responseTimeMs int64, errorRate, uptimePct float64) Result {
	if r.Details == nil {
		r.Details = make(map[string]any, 3)
	}
	r.Details[DetailResponseTimeMs] = responseTimeMs
	r.Details[DetailErrorRate] = errorRate
	r.Details[DetailUptimePct] = uptimePct
	return r
}

// WithDuration sets the duration on a result.
func (r Result) WithDuration(d time.Duration) Result {
	r.Duration = d
	return r
}

// Checker reports the health of one named component.
//
// Contract:
//   - Check honors ctx cancellation and returns promptly.
//   - Check never panics; a failed probe is an Unhealthy result.
//   - Implementations are safe for concurrent use.
type Checker interface {
	// Name identifies the component, e.g. "provider:chainlink".
	Name() string

	// Check runs the health check.
	Check(ctx context.Context) Result
}

// CheckerFunc adapts a function to the Checker interface, for checks
// with no state of their own.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc creates a function-backed checker.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

// Name identifies the component.
func (f *CheckerFunc) Name() string {
	return f.name
}

// Check runs the wrapped function.
func (f *CheckerFunc) Check(ctx context.Context) Result {
	return f.fn(ctx)
}
