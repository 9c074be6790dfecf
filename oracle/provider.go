package oracle

import "context"

// Provider is the capability interface a concrete data source
// implements. Cross-cutting behavior (validation, timeout, resilience,
// stats, telemetry) is layered on by Adapter, not inherited.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Fetch and Probe must honor cancellation/deadlines.
// - Errors: Fetch returns the raw upstream error; classification and
//   capture into QueryResult happen in the adapter.
type Provider interface {
	// Name returns the unique provider name.
	Name() string

	// Version returns the provider implementation version.
	Version() string

	// Supports returns the data types this provider can serve.
	Supports() []DataType

	// Fetch retrieves the datum for the request.
	Fetch(ctx context.Context, req *QueryRequest) (any, error)

	// Probe performs a lightweight liveness check.
	Probe(ctx context.Context) error
}

// ConfidenceScorer is an optional extension for providers that can
// judge the freshness/quality of a fetched datum. Scores are clamped
// to [0, 1].
type ConfidenceScorer interface {
	Confidence(req *QueryRequest, data any) float64
}

// Pricer is an optional extension for providers that charge per call.
type Pricer interface {
	Cost(req *QueryRequest, data any) float64
}

// defaultConfidence is used when a provider does not score its data.
const defaultConfidence = 1.0

// confidenceFor computes the confidence for a successful fetch.
func confidenceFor(p Provider, req *QueryRequest, data any) float64 {
	score := defaultConfidence
	if scorer, ok := p.(ConfidenceScorer); ok {
		score = scorer.Confidence(req, data)
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// costFor computes the charge for a successful fetch. Providers without
// pricing are treated as free.
func costFor(p Provider, req *QueryRequest, data any) float64 {
	if pricer, ok := p.(Pricer); ok {
		if c := pricer.Cost(req, data); c > 0 {
			return c
		}
	}
	return 0
}
