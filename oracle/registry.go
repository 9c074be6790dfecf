package oracle

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jonwraymond/oracleops/observe"
)

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// Logger records registration changes and failover decisions.
	// Optional.
	Logger observe.Logger
}

// Registry holds adapters and routes queries to the best available one
// with sequential failover.
//
// Contract:
// - Concurrency: safe for concurrent use; the adapter map is read-heavy
//   (per-query lookups) and write-light (register/unregister), guarded
//   by a read-write lock.
// - Errors: QueryBest never returns a Go error; every terminal outcome
//   is a QueryResult with Err populated.
type Registry struct {
	config RegistryConfig

	mu       sync.RWMutex
	adapters map[string]*Adapter
}

// NewRegistry creates an empty registry. Pass the instance where it is
// needed; there is no process-wide default.
func NewRegistry(config ...RegistryConfig) *Registry {
	cfg := RegistryConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	return &Registry{
		config:   cfg,
		adapters: make(map[string]*Adapter),
	}
}

// Register adds an adapter, replacing any prior registration under the
// same name.
func (r *Registry) Register(a *Adapter) {
	if a == nil {
		return
	}

	r.mu.Lock()
	r.adapters[a.Name()] = a
	r.mu.Unlock()

	r.logInfo(context.Background(), "adapter registered",
		observe.Field{Key: "provider", Value: a.Name()})
}

// Unregister removes the named adapter. Unknown names are a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	_, existed := r.adapters[name]
	delete(r.adapters, name)
	r.mu.Unlock()

	if existed {
		r.logInfo(context.Background(), "adapter unregistered",
			observe.Field{Key: "provider", Value: name})
	}
}

// Adapter returns the named adapter, or nil.
func (r *Registry) Adapter(name string) *Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.adapters[name]
}

// AdaptersFor returns every adapter whose supported set contains dt.
func (r *Registry) AdaptersFor(dt DataType) []*Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Adapter
	for _, a := range r.adapters {
		if a.SupportsType(dt) {
			out = append(out, a)
		}
	}
	// Name order keeps ranking deterministic when stats tie.
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Descriptors returns the descriptors of all registered adapters.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.adapters))
	for _, a := range r.adapters {
		out = append(out, a.Descriptor())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// QueryBest routes the request to the best-ranked adapter supporting
// its data type, failing over sequentially until one succeeds.
//
// Candidates are ranked once (success rate descending, average latency
// ascending as the tiebreaker) and the order is fixed for the duration
// of the call. Only one adapter is in flight at a time, bounding cost
// exposure. A validation failure of the request itself short-circuits
// failover, since every adapter would reject it the same way.
func (r *Registry) QueryBest(ctx context.Context, req *QueryRequest, preferred ...string) *QueryResult {
	candidates := r.AdaptersFor(req.DataType)
	if len(candidates) == 0 {
		return r.noAdapters(req)
	}

	if len(preferred) > 0 {
		allowed := make(map[string]bool, len(preferred))
		for _, name := range preferred {
			allowed[name] = true
		}
		var filtered []*Adapter
		for _, a := range candidates {
			if allowed[a.Name()] {
				filtered = append(filtered, a)
			}
		}
		if len(filtered) == 0 {
			return r.noAdapters(req)
		}
		candidates = filtered
	}

	rankAdapters(candidates)

	var lastErr string
	for i, a := range candidates {
		if i > 0 {
			r.logWarn(ctx, "failing over",
				observe.Field{Key: "request_id", Value: req.ID},
				observe.Field{Key: "provider", Value: a.Name()},
				observe.Field{Key: "last_error", Value: lastErr})
		}

		res := a.Query(ctx, req)
		if !res.Failed() {
			return res
		}
		if res.ErrKind == ErrorKindValidation {
			// The request itself is malformed; no adapter can do better.
			return res
		}
		lastErr = res.Err
	}

	res := failureResult("failed", req, ErrorKindProvider,
		fmt.Sprintf("all adapters failed: %s", lastErr), 0)
	r.logWarn(ctx, "all adapters failed",
		observe.Field{Key: "request_id", Value: req.ID},
		observe.Field{Key: "data_type", Value: string(req.DataType)},
		observe.Field{Key: "last_error", Value: lastErr})
	return res
}

func (r *Registry) noAdapters(req *QueryRequest) *QueryResult {
	return failureResult("none", req, ErrorKindNoAdapter,
		fmt.Sprintf("no adapters available for %s", req.DataType), 0)
}

// rankAdapters sorts candidates by success rate descending, then
// average latency ascending. The sort is stable so equally-ranked
// adapters keep a deterministic order.
func rankAdapters(adapters []*Adapter) {
	snaps := make(map[*Adapter]StatsSnapshot, len(adapters))
	for _, a := range adapters {
		snaps[a] = a.Stats()
	}
	sort.SliceStable(adapters, func(i, j int) bool {
		si, sj := snaps[adapters[i]], snaps[adapters[j]]
		if si.SuccessRate != sj.SuccessRate {
			return si.SuccessRate > sj.SuccessRate
		}
		return si.AvgLatencyMs < sj.AvgLatencyMs
	})
}

func (r *Registry) logInfo(ctx context.Context, msg string, fields ...observe.Field) {
	if r.config.Logger != nil {
		r.config.Logger.Info(ctx, msg, fields...)
	}
}

func (r *Registry) logWarn(ctx context.Context, msg string, fields ...observe.Field) {
	if r.config.Logger != nil {
		r.config.Logger.Warn(ctx, msg, fields...)
	}
}
