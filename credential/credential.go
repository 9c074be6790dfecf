package credential

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/jonwraymond/oracleops/secret"
)

// Source attaches credentials to outbound provider requests.
//
// Contract:
//   - Apply mutates only the request headers it owns.
//   - Apply is safe for concurrent use.
//   - Implementations must never log resolved credential values.
type Source interface {
	// Name returns the source name for diagnostics.
	Name() string

	// Apply attaches the credential to the request.
	Apply(ctx context.Context, req *http.Request) error
}

// APIKeyConfig configures an API key source.
type APIKeyConfig struct {
	// HeaderName is the header the key is sent in.
	// Default: "X-API-Key"
	HeaderName string

	// Value is the API key. It may be a literal, contain environment
	// variable references, or be a secretref ("secretref:env:COINGECKO_KEY").
	Value string

	// Resolver resolves secret references in Value. Optional; when nil,
	// Value undergoes strict environment expansion only.
	Resolver *secret.Resolver
}

// APIKey sends a static or resolver-backed key in a request header.
type APIKey struct {
	config APIKeyConfig

	mu       sync.Mutex
	resolved string
}

// NewAPIKey creates an API key source.
func NewAPIKey(config APIKeyConfig) *APIKey {
	if config.HeaderName == "" {
		config.HeaderName = "X-API-Key"
	}
	return &APIKey{config: config}
}

// Name returns "api_key".
func (a *APIKey) Name() string {
	return "api_key"
}

// Apply sets the API key header. The key is resolved once and cached.
func (a *APIKey) Apply(ctx context.Context, req *http.Request) error {
	value, err := a.value(ctx)
	if err != nil {
		return err
	}
	req.Header.Set(a.config.HeaderName, value)
	return nil
}

func (a *APIKey) value(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.resolved != "" {
		return a.resolved, nil
	}
	resolved, err := a.config.Resolver.ResolveValue(ctx, a.config.Value)
	if err != nil {
		return "", err
	}
	resolved = strings.TrimSpace(resolved)
	if resolved == "" {
		return "", ErrMissingValue
	}
	a.resolved = resolved
	return resolved, nil
}

// BearerConfig configures a bearer token source.
type BearerConfig struct {
	// Token is the bearer token. Like APIKeyConfig.Value it may be a
	// literal, an environment reference, or a secretref.
	Token string

	// Resolver resolves secret references in Token. Optional.
	Resolver *secret.Resolver
}

// Bearer sends a fixed token in the Authorization header.
type Bearer struct {
	config BearerConfig

	mu       sync.Mutex
	resolved string
}

// NewBearer creates a bearer token source.
func NewBearer(config BearerConfig) *Bearer {
	return &Bearer{config: config}
}

// Name returns "bearer".
func (b *Bearer) Name() string {
	return "bearer"
}

// Apply sets "Authorization: Bearer <token>".
func (b *Bearer) Apply(ctx context.Context, req *http.Request) error {
	b.mu.Lock()
	token := b.resolved
	b.mu.Unlock()

	if token == "" {
		resolved, err := b.config.Resolver.ResolveValue(ctx, b.config.Token)
		if err != nil {
			return err
		}
		resolved = strings.TrimSpace(resolved)
		if resolved == "" {
			return ErrMissingValue
		}
		b.mu.Lock()
		b.resolved = resolved
		b.mu.Unlock()
		token = resolved
	}

	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// Chain applies multiple sources in order. A provider that wants both an
// API key header and a signed JWT can combine the two sources.
type Chain struct {
	sources []Source
}

// NewChain creates a chained source.
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

// Name returns "chain".
func (c *Chain) Name() string {
	return "chain"
}

// Apply applies each source in order, stopping at the first error.
func (c *Chain) Apply(ctx context.Context, req *http.Request) error {
	for _, s := range c.sources {
		if s == nil {
			return ErrNilSource
		}
		if err := s.Apply(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// Ensure implementations satisfy Source.
var (
	_ Source = (*APIKey)(nil)
	_ Source = (*Bearer)(nil)
	_ Source = (*Chain)(nil)
)
