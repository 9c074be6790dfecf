package credential

import "net/http"

// Transport is an http.RoundTripper that applies a credential source to
// every outbound request. Wire it into a provider's HTTP client:
//
//	client := &http.Client{
//		Transport: credential.NewTransport(nil, source),
//	}
type Transport struct {
	base   http.RoundTripper
	source Source
}

// NewTransport creates a credential-injecting transport.
// A nil base uses http.DefaultTransport.
func NewTransport(base http.RoundTripper, source Source) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, source: source}
}

// RoundTrip clones the request, applies the credential, and delegates to
// the base transport. The original request is never mutated.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.source == nil {
		return nil, ErrNilSource
	}

	clone := req.Clone(req.Context())
	if err := t.source.Apply(req.Context(), clone); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(clone)
}

// Ensure Transport implements http.RoundTripper.
var _ http.RoundTripper = (*Transport)(nil)
