package observe

import (
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// TestMiddleware_SuccessPath verifies successful queries record telemetry.
func TestMiddleware_SuccessPath(t *testing.T) {
	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
	tracer := &tracerImpl{tracer: tp.Tracer("test")}

	metricReader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))
	metrics, _ := newMetrics(mp.Meter("test"))

	mw := NewMiddleware(tracer, metrics, &noopLogger{})

	meta := QueryMeta{Provider: "chainlink", DataType: "price"}
	expectedResult := map[string]any{"price": 42.5}

	innerFunc := func(ctx context.Context, m QueryMeta) (any, error) {
		return expectedResult, nil
	}

	wrapped := mw.Wrap(innerFunc)
	result, err := wrapped(context.Background(), meta)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result == nil {
		t.Error("expected non-nil result")
	}

	spans := spanRecorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "oracle.query.chainlink" {
		t.Errorf("expected span name 'oracle.query.chainlink', got %q", spans[0].Name())
	}

	var rm metricdata.ResourceMetrics
	if err := metricReader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	if findMetric(rm, "oracle.query.total") == nil {
		t.Error("oracle.query.total metric not found")
	}
}

// TestMiddleware_ErrorPath verifies failed queries record error telemetry.
func TestMiddleware_ErrorPath(t *testing.T) {
	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
	tracer := &tracerImpl{tracer: tp.Tracer("test")}

	metricReader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))
	metrics, _ := newMetrics(mp.Meter("test"))

	mw := NewMiddleware(tracer, metrics, &noopLogger{})

	meta := QueryMeta{Provider: "sportradar", DataType: "sports"}
	testErr := errors.New("upstream unavailable")

	innerFunc := func(ctx context.Context, m QueryMeta) (any, error) {
		return nil, testErr
	}

	wrapped := mw.Wrap(innerFunc)
	_, err := wrapped(context.Background(), meta)

	if err != testErr {
		t.Errorf("expected error %v, got %v", testErr, err)
	}

	spans := spanRecorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	var queryError bool
	for _, attr := range spans[0].Attributes() {
		if string(attr.Key) == "oracle.error" {
			queryError = attr.Value.AsBool()
		}
	}
	if !queryError {
		t.Error("expected oracle.error=true on failed query")
	}

	var rm metricdata.ResourceMetrics
	if err := metricReader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	errMetric := findMetric(rm, "oracle.query.errors")
	if errMetric == nil {
		t.Error("oracle.query.errors metric not found")
	} else {
		sum, ok := errMetric.Data.(metricdata.Sum[int64])
		if ok && len(sum.DataPoints) > 0 && sum.DataPoints[0].Value != 1 {
			t.Errorf("expected errors count 1, got %d", sum.DataPoints[0].Value)
		}
	}
}

// TestMiddleware_FailoverCounter verifies RecordFailover increments the counter.
func TestMiddleware_FailoverCounter(t *testing.T) {
	metricReader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))
	metrics, err := newMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	metrics.RecordFailover(context.Background(), "chainlink", "price")
	metrics.RecordFailover(context.Background(), "chainlink", "price")

	var rm metricdata.ResourceMetrics
	if err := metricReader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	m := findMetric(rm, "oracle.failover.total")
	if m == nil {
		t.Fatal("oracle.failover.total metric not found")
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) == 0 {
		t.Fatal("expected at least one data point")
	}
	if sum.DataPoints[0].Value != 2 {
		t.Errorf("expected failover count 2, got %d", sum.DataPoints[0].Value)
	}
}

// TestNewNoopMiddleware verifies the no-op middleware passes results through.
func TestNewNoopMiddleware(t *testing.T) {
	mw := NewNoopMiddleware()

	wrapped := mw.Wrap(func(ctx context.Context, m QueryMeta) (any, error) {
		return "ok", nil
	})

	result, err := wrapped(context.Background(), QueryMeta{Provider: "p"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected result 'ok', got %v", result)
	}
}
