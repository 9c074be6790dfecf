package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records execution metrics for provider queries.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordQuery records a provider query with duration and error status.
	RecordQuery(ctx context.Context, meta QueryMeta, duration time.Duration, err error)

	// RecordFailover records a failover from one provider to the next.
	RecordFailover(ctx context.Context, from string, dataType string)

	// RecordCircuitTransition records a circuit breaker state change
	// for a provider.
	RecordCircuitTransition(ctx context.Context, provider string, from, to string)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter           metric.Meter
	totalCount      metric.Int64Counter
	errorCount      metric.Int64Counter
	durationHist    metric.Float64Histogram
	failoverCount   metric.Int64Counter
	transitionCount metric.Int64Counter
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	totalCount, err := meter.Int64Counter(
		"oracle.query.total",
		metric.WithDescription("Total number of provider queries"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"oracle.query.errors",
		metric.WithDescription("Total number of provider query errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"oracle.query.duration_ms",
		metric.WithDescription("Provider query duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	failoverCount, err := meter.Int64Counter(
		"oracle.failover.total",
		metric.WithDescription("Total number of provider failovers"),
		metric.WithUnit("{failover}"),
	)
	if err != nil {
		return nil, err
	}

	transitionCount, err := meter.Int64Counter(
		"oracle.circuit.transitions",
		metric.WithDescription("Total number of circuit breaker state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:           meter,
		totalCount:      totalCount,
		errorCount:      errorCount,
		durationHist:    durationHist,
		failoverCount:   failoverCount,
		transitionCount: transitionCount,
	}, nil
}

// RecordQuery records metrics for a provider query.
func (m *metricsImpl) RecordQuery(ctx context.Context, meta QueryMeta, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("oracle.provider", meta.Provider),
		attribute.String("oracle.data_type", meta.DataType),
	}

	opt := metric.WithAttributes(attrs...)

	m.totalCount.Add(ctx, 1, opt)

	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}

	durationMs := float64(duration.Milliseconds())
	m.durationHist.Record(ctx, durationMs, opt)
}

// RecordFailover records a failover away from a provider.
func (m *metricsImpl) RecordFailover(ctx context.Context, from string, dataType string) {
	m.failoverCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("oracle.provider", from),
		attribute.String("oracle.data_type", dataType),
	))
}

// RecordCircuitTransition records a circuit breaker state change.
func (m *metricsImpl) RecordCircuitTransition(ctx context.Context, provider string, from, to string) {
	m.transitionCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("oracle.provider", provider),
		attribute.String("circuit.from", from),
		attribute.String("circuit.to", to),
	))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordQuery(ctx context.Context, meta QueryMeta, duration time.Duration, err error) {
}

func (m *noopMetrics) RecordFailover(ctx context.Context, from string, dataType string) {}

func (m *noopMetrics) RecordCircuitTransition(ctx context.Context, provider string, from, to string) {
}
