// Package observe provides observability primitives for provider queries.
//
// It is a pure instrumentation library: no querying, no transport, no I/O
// beyond exporter setup. Consumers wire the observer into oracle adapters
// via Middleware.
package observe
