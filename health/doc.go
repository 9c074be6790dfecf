// Package health provides health checking for query providers.
//
// A Checker is any component that can report its health status:
// Healthy, Degraded, or Unhealthy. AdapterChecker probes a single
// registered provider; RegistryChecker aggregates every provider in a
// registry. The Aggregator combines arbitrary checkers into one
// composite check, and the HTTP handlers expose liveness, readiness,
// and detailed status endpoints.
//
//	agg := health.NewAggregator()
//	agg.Register("providers", health.NewRegistryChecker(registry))
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, agg)
package health
