package oracle

import (
	"context"
	"testing"
)

func BenchmarkAdapter_Query(b *testing.B) {
	a := NewAdapter(&fakeProvider{name: "bench"}, AdapterConfig{})
	req := NewQueryRequest("BTC/USD", DataTypePrice)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Query(ctx, req)
	}
}

func BenchmarkRegistry_QueryBest(b *testing.B) {
	r := NewRegistry()
	for _, name := range []string{"one", "two", "three"} {
		r.Register(NewAdapter(&fakeProvider{name: name}, AdapterConfig{}))
	}
	req := NewQueryRequest("BTC/USD", DataTypePrice)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.QueryBest(ctx, req)
	}
}

func BenchmarkRankAdapters(b *testing.B) {
	adapters := make([]*Adapter, 0, 8)
	for i := 0; i < 8; i++ {
		a := NewAdapter(&fakeProvider{name: string(rune('a' + i))}, AdapterConfig{})
		seedStats(a, int64(100+i), int64(i), int64(1000*i))
		adapters = append(adapters, a)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rankAdapters(adapters)
	}
}
