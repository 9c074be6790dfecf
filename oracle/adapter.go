package oracle

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/oracleops/observe"
	"github.com/jonwraymond/oracleops/resilience"
)

// DefaultProbeTimeout bounds health probes.
const DefaultProbeTimeout = 5 * time.Second

// AdapterConfig configures the cross-cutting behavior wrapped around a
// Provider.
type AdapterConfig struct {
	// Executor applies the resilience stack (circuit breaker, rate
	// limit, pool, retry) to every fetch. Optional.
	Executor *resilience.Executor

	// Middleware adds tracing, metrics, and logging around every fetch.
	// Optional.
	Middleware *observe.Middleware

	// ProbeTimeout bounds health probes.
	// Default: 5 seconds
	ProbeTimeout time.Duration
}

// Adapter decorates a Provider with the uniform query lifecycle:
// request validation, timeout enforcement, resilience, stats, and
// confidence/cost computation.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: Query never returns a Go error; failures are captured in
//   the QueryResult so the registry can inspect them uniformly.
type Adapter struct {
	provider Provider
	config   AdapterConfig
	supports map[DataType]bool
	stats    Stats

	probes singleflight.Group
}

// NewAdapter wraps a provider in the query contract.
func NewAdapter(provider Provider, config AdapterConfig) *Adapter {
	// Apply defaults
	if config.ProbeTimeout <= 0 {
		config.ProbeTimeout = DefaultProbeTimeout
	}

	supports := make(map[DataType]bool)
	for _, dt := range provider.Supports() {
		supports[dt] = true
	}

	return &Adapter{
		provider: provider,
		config:   config,
		supports: supports,
	}
}

// Name returns the wrapped provider's name.
func (a *Adapter) Name() string {
	return a.provider.Name()
}

// SupportsType reports whether the provider serves dt.
func (a *Adapter) SupportsType(dt DataType) bool {
	return a.supports[dt]
}

// Query runs the full query lifecycle against the provider.
//
// Validation failures are terminal and never retried. Any other failure
// (timeout, upstream error) is captured into the result with
// confidence 0 and counted against the adapter's error stats. A
// circuit-breaker rejection is a refusal to attempt, not an attempt: it
// produces a failed result but does not touch the counters.
func (a *Adapter) Query(ctx context.Context, req *QueryRequest) *QueryResult {
	start := time.Now()

	if issues := a.validateRequest(req); len(issues) > 0 {
		err := NewValidationError(issues...)
		latency := time.Since(start)
		a.stats.recordFailure(latency, err)
		return failureResult(a.Name(), req, ErrorKindValidation, err.Error(), latency)
	}

	// An attempt abandoned by its timeout may still complete in the
	// background; writes go through the lock and only a successful
	// overall execution reads the value.
	var mu sync.Mutex
	var data any

	fetch := func(ctx context.Context) error {
		d, err := a.provider.Fetch(ctx, req)
		if err != nil {
			return err
		}
		mu.Lock()
		data = d
		mu.Unlock()
		return nil
	}

	// The request timeout bounds each individual attempt.
	attempt := func(ctx context.Context) error {
		return resilience.ExecuteWithTimeout(ctx, req.EffectiveTimeout(), fetch)
	}

	err := a.execute(ctx, req, attempt)
	latency := time.Since(start)

	if err != nil {
		kind := classify(err)
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return failureResult(a.Name(), req, kind, err.Error(), latency)
		}
		a.stats.recordFailure(latency, err)
		return failureResult(a.Name(), req, kind, err.Error(), latency)
	}

	a.stats.recordSuccess(latency)

	mu.Lock()
	d := data
	mu.Unlock()

	return &QueryResult{
		Data:       d,
		Provider:   a.Name(),
		RequestID:  req.ID,
		Timestamp:  time.Now(),
		Confidence: confidenceFor(a.provider, req, d),
		LatencyMs:  latency.Milliseconds(),
		Cost:       costFor(a.provider, req, d),
	}
}

// execute runs op through the resilience executor and observability
// middleware, when configured.
func (a *Adapter) execute(ctx context.Context, req *QueryRequest, op func(context.Context) error) error {
	run := op
	if a.config.Executor != nil {
		inner := run
		run = func(ctx context.Context) error {
			return a.config.Executor.Execute(ctx, inner)
		}
	}

	if a.config.Middleware != nil {
		wrapped := a.config.Middleware.Wrap(func(ctx context.Context, meta observe.QueryMeta) (any, error) {
			return nil, run(ctx)
		})
		_, err := wrapped(ctx, a.queryMeta(req))
		return err
	}
	return run(ctx)
}

func (a *Adapter) queryMeta(req *QueryRequest) observe.QueryMeta {
	return observe.QueryMeta{
		Provider:  a.Name(),
		DataType:  string(req.DataType),
		RequestID: req.ID,
		Version:   a.provider.Version(),
	}
}

func (a *Adapter) validateRequest(req *QueryRequest) []string {
	var issues []string
	if req == nil {
		return []string{"request is nil"}
	}
	if req.Query == "" {
		issues = append(issues, "query must not be empty")
	}
	if !req.DataType.Valid() {
		issues = append(issues, "unknown data type "+string(req.DataType))
	} else if !a.supports[req.DataType] {
		issues = append(issues, "data type "+string(req.DataType)+" not supported by "+a.Name())
	}
	return issues
}

// HealthStatus probes the provider and combines the outcome with the
// adapter's running stats. Concurrent callers share one probe.
func (a *Adapter) HealthStatus(ctx context.Context) HealthStatus {
	v, _, _ := a.probes.Do("probe", func() (any, error) {
		start := time.Now()
		err := resilience.ExecuteWithTimeout(ctx, a.config.ProbeTimeout, a.provider.Probe)
		elapsed := time.Since(start)

		snap := a.stats.Snapshot()
		hs := HealthStatus{
			ResponseTimeMs:   elapsed.Milliseconds(),
			ErrorRate:        100 - snap.SuccessRate,
			UptimePercentage: snap.SuccessRate,
			LastError:        snap.LastError,
		}
		if err != nil {
			hs.Healthy = false
			hs.ErrorRate = 100
			hs.LastError = err.Error()
		} else {
			hs.Healthy = true
		}
		return hs, nil
	})
	return v.(HealthStatus)
}

// Stats returns a snapshot of the adapter's counters.
func (a *Adapter) Stats() StatsSnapshot {
	return a.stats.Snapshot()
}

// ResetStats clears the adapter's counters.
func (a *Adapter) ResetStats() {
	a.stats.Reset()
}

// Descriptor returns the adapter's registration descriptor with current
// stats.
func (a *Adapter) Descriptor() Descriptor {
	return Descriptor{
		Name:               a.Name(),
		Version:            a.provider.Version(),
		SupportedDataTypes: a.provider.Supports(),
		Stats:              a.stats.Snapshot(),
	}
}
