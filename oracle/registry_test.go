package oracle

import (
	"context"
	"errors"
	"testing"
)

// seedStats installs synthetic counters so ranking is deterministic.
func seedStats(a *Adapter, requests, failures, totalLatencyMs int64) {
	a.stats.requests.Store(requests)
	a.stats.errors.Store(failures)
	a.stats.totalLatencyMs.Store(totalLatencyMs)
}

func newPriceAdapter(name string, fetch func(ctx context.Context, req *QueryRequest) (any, error)) *Adapter {
	return NewAdapter(&fakeProvider{
		name:  name,
		types: []DataType{DataTypePrice},
		fetch: fetch,
	}, AdapterConfig{})
}

func TestRegistry_AdaptersForExactFiltering(t *testing.T) {
	r := NewRegistry()

	price := NewAdapter(&fakeProvider{name: "price-only", types: []DataType{DataTypePrice}}, AdapterConfig{})
	multi := NewAdapter(&fakeProvider{name: "multi", types: []DataType{DataTypePrice, DataTypeSports}}, AdapterConfig{})
	sports := NewAdapter(&fakeProvider{name: "sports-only", types: []DataType{DataTypeSports}}, AdapterConfig{})
	r.Register(price)
	r.Register(multi)
	r.Register(sports)

	got := r.AdaptersFor(DataTypePrice)
	if len(got) != 2 {
		t.Fatalf("expected 2 price adapters, got %d", len(got))
	}
	for _, a := range got {
		if !a.SupportsType(DataTypePrice) {
			t.Errorf("adapter %s does not support price", a.Name())
		}
	}

	if got := r.AdaptersFor(DataTypeWeather); len(got) != 0 {
		t.Errorf("expected no weather adapters, got %d", len(got))
	}
}

func TestRegistry_RegisterOverwritesByName(t *testing.T) {
	r := NewRegistry()

	first := NewAdapter(&fakeProvider{name: "feed", version: "1"}, AdapterConfig{})
	second := NewAdapter(&fakeProvider{name: "feed", version: "2"}, AdapterConfig{})
	r.Register(first)
	r.Register(second)

	if got := r.Adapter("feed"); got != second {
		t.Error("expected later registration to win")
	}
	if len(r.Descriptors()) != 1 {
		t.Errorf("expected 1 descriptor, got %d", len(r.Descriptors()))
	}
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry()
	r.Register(NewAdapter(&fakeProvider{name: "feed"}, AdapterConfig{}))

	r.Unregister("feed")
	if r.Adapter("feed") != nil {
		t.Error("expected adapter removed")
	}

	// Unknown names are a no-op.
	r.Unregister("missing")
}

func TestRegistry_QueryBestRanksBySuccessRateThenLatency(t *testing.T) {
	r := NewRegistry()

	var order []string
	adapterA := newPriceAdapter("adapter-a", func(ctx context.Context, req *QueryRequest) (any, error) {
		order = append(order, "adapter-a")
		return "from-a", nil
	})
	adapterB := newPriceAdapter("adapter-b", func(ctx context.Context, req *QueryRequest) (any, error) {
		order = append(order, "adapter-b")
		return nil, errors.New("b is down")
	})

	// A: 90% success, 200ms average. B: 95% success, 500ms average.
	seedStats(adapterA, 100, 10, 20000)
	seedStats(adapterB, 100, 5, 50000)

	r.Register(adapterA)
	r.Register(adapterB)

	res := r.QueryBest(context.Background(), NewQueryRequest("BTC/USD", DataTypePrice))

	if res.Failed() {
		t.Fatalf("expected failover to succeed: %s", res.Err)
	}
	if res.Provider != "adapter-a" {
		t.Errorf("expected adapter-a to produce the result, got %s", res.Provider)
	}
	if len(order) != 2 || order[0] != "adapter-b" || order[1] != "adapter-a" {
		t.Errorf("expected try order [adapter-b adapter-a], got %v", order)
	}
	if res.Data != "from-a" {
		t.Errorf("expected data from adapter-a, got %v", res.Data)
	}
}

func TestRegistry_QueryBestLatencyTiebreak(t *testing.T) {
	r := NewRegistry()

	var first string
	slow := newPriceAdapter("slow", func(ctx context.Context, req *QueryRequest) (any, error) {
		if first == "" {
			first = "slow"
		}
		return "slow", nil
	})
	fast := newPriceAdapter("fast", func(ctx context.Context, req *QueryRequest) (any, error) {
		if first == "" {
			first = "fast"
		}
		return "fast", nil
	})

	// Equal success rate, different latency.
	seedStats(slow, 100, 10, 60000)
	seedStats(fast, 100, 10, 10000)

	r.Register(slow)
	r.Register(fast)

	res := r.QueryBest(context.Background(), NewQueryRequest("BTC/USD", DataTypePrice))
	if first != "fast" || res.Provider != "fast" {
		t.Errorf("expected fast adapter to be tried first, got first=%q provider=%q", first, res.Provider)
	}
}

func TestRegistry_QueryBestNoAdapters(t *testing.T) {
	r := NewRegistry()
	r.Register(NewAdapter(&fakeProvider{name: "price-only", types: []DataType{DataTypePrice}}, AdapterConfig{}))

	res := r.QueryBest(context.Background(), NewQueryRequest("rain tomorrow?", DataTypeWeather))

	if res.Provider != "none" {
		t.Errorf("expected provider 'none', got %q", res.Provider)
	}
	if res.Err != "no adapters available for weather" {
		t.Errorf("unexpected error message: %q", res.Err)
	}
	if res.ErrKind != ErrorKindNoAdapter {
		t.Errorf("expected no_adapter kind, got %s", res.ErrKind)
	}
	if res.Confidence != 0 {
		t.Errorf("expected confidence 0, got %v", res.Confidence)
	}
}

func TestRegistry_QueryBestPreferredFilter(t *testing.T) {
	r := NewRegistry()

	preferredCalled := false
	r.Register(newPriceAdapter("preferred", func(ctx context.Context, req *QueryRequest) (any, error) {
		preferredCalled = true
		return "ok", nil
	}))
	r.Register(newPriceAdapter("other", func(ctx context.Context, req *QueryRequest) (any, error) {
		t.Error("non-preferred adapter must not be tried")
		return nil, nil
	}))

	res := r.QueryBest(context.Background(), NewQueryRequest("BTC/USD", DataTypePrice), "preferred")
	if res.Failed() || !preferredCalled {
		t.Errorf("expected preferred adapter to serve the query: %+v", res)
	}

	// A filter that excludes every candidate is a terminal failure with
	// the same shape as having no adapters at all.
	res = r.QueryBest(context.Background(), NewQueryRequest("BTC/USD", DataTypePrice), "nonexistent")
	if res.Provider != "none" || res.ErrKind != ErrorKindNoAdapter {
		t.Errorf("expected no_adapter failure, got %+v", res)
	}
}

func TestRegistry_QueryBestAllFail(t *testing.T) {
	r := NewRegistry()

	r.Register(newPriceAdapter("one", func(ctx context.Context, req *QueryRequest) (any, error) {
		return nil, errors.New("one down")
	}))
	r.Register(newPriceAdapter("two", func(ctx context.Context, req *QueryRequest) (any, error) {
		return nil, errors.New("two down")
	}))

	res := r.QueryBest(context.Background(), NewQueryRequest("BTC/USD", DataTypePrice))

	if res.Provider != "failed" {
		t.Errorf("expected provider 'failed', got %q", res.Provider)
	}
	if res.ErrKind != ErrorKindProvider {
		t.Errorf("expected provider kind, got %s", res.ErrKind)
	}
	// The summary carries the last attempt's error.
	if res.Err == "" || res.Err == "all adapters failed: " {
		t.Errorf("expected last error in summary, got %q", res.Err)
	}
}

func TestRegistry_QueryBestValidationShortCircuits(t *testing.T) {
	r := NewRegistry()

	calls := 0
	for _, name := range []string{"one", "two"} {
		r.Register(newPriceAdapter(name, func(ctx context.Context, req *QueryRequest) (any, error) {
			calls++
			return "ok", nil
		}))
	}

	// Empty query fails validation identically everywhere; failover
	// would only repeat the rejection.
	res := r.QueryBest(context.Background(), &QueryRequest{DataType: DataTypePrice})

	if res.ErrKind != ErrorKindValidation {
		t.Fatalf("expected validation kind, got %s", res.ErrKind)
	}
	if calls != 0 {
		t.Errorf("expected no provider fetches, got %d", calls)
	}
}

func TestRegistry_SequentialFailover(t *testing.T) {
	r := NewRegistry()

	inFlight := 0
	maxInFlight := 0
	for _, name := range []string{"one", "two", "three"} {
		final := name == "three"
		r.Register(newPriceAdapter(name, func(ctx context.Context, req *QueryRequest) (any, error) {
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			inFlight--
			if final {
				return "ok", nil
			}
			return nil, errors.New("down")
		}))
	}

	res := r.QueryBest(context.Background(), NewQueryRequest("BTC/USD", DataTypePrice))
	if res.Failed() {
		t.Fatalf("expected eventual success: %s", res.Err)
	}
	if maxInFlight != 1 {
		t.Errorf("expected one adapter in flight at a time, got %d", maxInFlight)
	}
}
