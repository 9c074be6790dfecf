package cache

import (
	"context"
	"encoding/json"

	"github.com/jonwraymond/oracleops/oracle"
)

// QueryFunc is the routing function signature the middleware wraps,
// matching Registry.QueryBest.
type QueryFunc func(ctx context.Context, req *oracle.QueryRequest) *oracle.QueryResult

// QueryCache wraps query routing with result caching. Failed results
// are never cached; data types excluded by policy bypass the cache
// entirely.
type QueryCache struct {
	cache  Cache
	keyer  Keyer
	policy Policy
}

// NewQueryCache creates a query cache middleware. A nil keyer defaults
// to DefaultKeyer.
func NewQueryCache(cache Cache, keyer Keyer, policy Policy) *QueryCache {
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	return &QueryCache{
		cache:  cache,
		keyer:  keyer,
		policy: policy,
	}
}

// Query serves the request from cache when possible, otherwise routes
// it via next and caches a successful result.
//
// Cached results carry Metadata["cache"]="hit" so callers can tell a
// replay from a live fetch.
func (m *QueryCache) Query(ctx context.Context, req *oracle.QueryRequest, next QueryFunc) *oracle.QueryResult {
	dataType := string(req.DataType)
	if !m.policy.ShouldCache(dataType) {
		return next(ctx, req)
	}

	key, err := m.keyer.Key(dataType, req.Query, req.Parameters)
	if err != nil {
		// Key generation failed - route without caching
		return next(ctx, req)
	}

	if cached, ok := m.cache.Get(ctx, key); ok {
		var res oracle.QueryResult
		if err := json.Unmarshal(cached, &res); err == nil {
			if res.Metadata == nil {
				res.Metadata = make(map[string]any, 1)
			}
			res.Metadata["cache"] = "hit"
			res.RequestID = req.ID
			return &res
		}
		// Corrupt entry: drop it and fall through to a live fetch.
		_ = m.cache.Delete(ctx, key)
	}

	res := next(ctx, req)
	if res.Failed() {
		return res
	}

	if encoded, err := json.Marshal(res); err == nil {
		_ = m.cache.Set(ctx, key, encoded, m.policy.EffectiveTTL(dataType))
	}
	return res
}

// Wrap returns a QueryFunc with caching applied, for composition with
// other middleware.
func (m *QueryCache) Wrap(next QueryFunc) QueryFunc {
	return func(ctx context.Context, req *oracle.QueryRequest) *oracle.QueryResult {
		return m.Query(ctx, req, next)
	}
}
