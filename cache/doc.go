// Package cache provides deterministic caching for query results.
//
// It provides a Cache interface with a memory implementation,
// SHA-256-based key derivation over the query identity, and per-data-
// type TTL policies. Freeform results are excluded by default since
// LLM judgments are not reproducible.
package cache
