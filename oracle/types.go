package oracle

import (
	"time"

	"github.com/google/uuid"
)

// DataType identifies the kind of datum a query asks for.
type DataType string

const (
	// DataTypePrice is an asset or commodity price.
	DataTypePrice DataType = "price"
	// DataTypeSports is a sports result.
	DataTypeSports DataType = "sports"
	// DataTypeWeather is a weather observation or forecast.
	DataTypeWeather DataType = "weather"
	// DataTypePrediction is a resolved prediction-market outcome.
	DataTypePrediction DataType = "prediction"
	// DataTypeFreeform is an open-ended judgment, typically produced by
	// an LLM and recovered into structured form afterwards.
	DataTypeFreeform DataType = "freeform"
)

// Valid reports whether dt is a known data type.
func (dt DataType) Valid() bool {
	switch dt {
	case DataTypePrice, DataTypeSports, DataTypeWeather, DataTypePrediction, DataTypeFreeform:
		return true
	default:
		return false
	}
}

// Format is the response format a caller asks a provider for.
type Format string

const (
	FormatJSON   Format = "json"
	FormatXML    Format = "xml"
	FormatText   Format = "text"
	FormatBinary Format = "binary"
)

// DefaultTimeout is the per-query timeout applied when a request does
// not specify one.
const DefaultTimeout = 30 * time.Second

// QueryRequest describes one datum to fetch. Treat it as immutable once
// constructed; the router never mutates it and shares it across
// failover attempts.
type QueryRequest struct {
	// ID uniquely identifies the request for correlation in logs,
	// traces, and results.
	ID string `json:"id"`

	// Query is the provider-facing question, e.g. an asset pair or a
	// free-form prompt. Must be non-empty.
	Query string `json:"query"`

	// DataType tags the kind of datum requested; used for adapter
	// selection.
	DataType DataType `json:"data_type"`

	// Parameters carries provider-specific knobs.
	Parameters map[string]any `json:"parameters,omitempty"`

	// Timeout bounds the whole fetch. Zero means DefaultTimeout.
	Timeout time.Duration `json:"timeout"`

	// Format is the desired response format.
	Format Format `json:"format"`

	// SystemPromptOverride replaces an LLM provider's default system
	// prompt for this request. Providers that are not LLM-backed
	// ignore it.
	SystemPromptOverride string `json:"system_prompt_override,omitempty"`

	// Metadata carries caller annotations passed through to the result.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// NewQueryRequest builds a request with defaults applied and a fresh ID.
func NewQueryRequest(query string, dataType DataType) *QueryRequest {
	return &QueryRequest{
		ID:       uuid.NewString(),
		Query:    query,
		DataType: dataType,
		Timeout:  DefaultTimeout,
		Format:   FormatJSON,
	}
}

// EffectiveTimeout returns the request timeout, falling back to
// DefaultTimeout.
func (r *QueryRequest) EffectiveTimeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

// ErrorKind classifies a failed query result.
type ErrorKind string

const (
	// ErrorKindValidation means the request or response failed
	// validation; retrying or failing over cannot help.
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindTimeout means the fetch exceeded its deadline.
	ErrorKindTimeout ErrorKind = "timeout"
	// ErrorKindCircuitOpen means the adapter's breaker rejected the call
	// without attempting it.
	ErrorKindCircuitOpen ErrorKind = "circuit_open"
	// ErrorKindProvider wraps any other upstream failure.
	ErrorKindProvider ErrorKind = "provider"
	// ErrorKindNoAdapter means no registered adapter could serve the
	// request.
	ErrorKindNoAdapter ErrorKind = "no_adapter"
)

// QueryResult is the uniform outcome shape for every query. Exactly one
// of Data (success) or Err (failure) is meaningfully populated, and
// Confidence is always 0 on failure.
type QueryResult struct {
	// Data is the fetched datum on success.
	Data any `json:"data,omitempty"`

	// Provider is the adapter that produced this result. The synthetic
	// values "none" and "failed" mark terminal routing failures.
	Provider string `json:"provider"`

	// RequestID echoes QueryRequest.ID.
	RequestID string `json:"request_id,omitempty"`

	// Timestamp is when the result was produced.
	Timestamp time.Time `json:"timestamp"`

	// Confidence is a normalized [0,1] freshness/quality score.
	Confidence float64 `json:"confidence"`

	// LatencyMs is the wall-clock duration of the attempt.
	LatencyMs int64 `json:"latency_ms"`

	// Cost is the provider charge for the call, in USD.
	Cost float64 `json:"cost"`

	// Err is the failure description, empty on success.
	Err string `json:"error,omitempty"`

	// ErrKind classifies Err; empty on success.
	ErrKind ErrorKind `json:"error_kind,omitempty"`

	// Metadata carries provider and router annotations.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Failed reports whether the result represents a failure.
func (r *QueryResult) Failed() bool {
	return r.Err != ""
}

// failureResult builds the uniform failure shape.
func failureResult(provider string, req *QueryRequest, kind ErrorKind, msg string, latency time.Duration) *QueryResult {
	res := &QueryResult{
		Provider:   provider,
		Timestamp:  time.Now(),
		Confidence: 0,
		LatencyMs:  latency.Milliseconds(),
		Err:        msg,
		ErrKind:    kind,
	}
	if req != nil {
		res.RequestID = req.ID
	}
	return res
}
