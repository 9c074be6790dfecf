// Package oracle routes queries across multiple unreliable external
// data providers and returns one validated answer.
//
// A Provider implements the capability interface for one external data
// source (a price feed, a sports or weather API, a prediction-market
// resolver, an LLM judgment endpoint). Adapter decorates a provider
// with the uniform query lifecycle: request validation, timeout
// enforcement, the resilience stack, per-adapter statistics, and
// confidence/cost computation. Registry holds adapters, ranks them by
// live success rate and latency, and fails over sequentially until one
// produces a result.
//
// Every terminal outcome, success or failure, is a QueryResult, so
// callers have a single shape to handle. Partial degradation (some but
// not all providers down) is invisible to a caller as long as one
// adapter succeeds.
//
//	registry := oracle.NewRegistry()
//	registry.Register(oracle.NewAdapter(coindesk, oracle.AdapterConfig{
//	    Executor: executor,
//	}))
//
//	req := oracle.NewQueryRequest("BTC-USD", oracle.DataTypePrice)
//	res := registry.QueryBest(ctx, req)
//	if res.Failed() {
//	    // res.Err describes the terminal failure
//	}
package oracle
