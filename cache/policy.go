package cache

import "time"

// Policy configures caching behavior per data type.
type Policy struct {
	// DefaultTTL is the TTL for data types without a specific entry.
	// If zero, caching is disabled by default.
	DefaultTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Per-type TTLs are clamped to
	// this. If zero, no maximum is enforced.
	MaxTTL time.Duration

	// TTLByType overrides the TTL for specific data types. Prices go
	// stale in seconds; sports results are stable for hours.
	TTLByType map[string]time.Duration

	// SkipTypes lists data types that are never cached.
	SkipTypes []string
}

// DefaultPolicy returns the default caching policy: 5 minutes default,
// 30 seconds for prices, 1 hour ceiling, freeform never cached since
// LLM judgments are not reproducible.
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL: 5 * time.Minute,
		MaxTTL:     1 * time.Hour,
		TTLByType: map[string]time.Duration{
			"price":   30 * time.Second,
			"weather": 10 * time.Minute,
			"sports":  1 * time.Hour,
		},
		SkipTypes: []string{"freeform"},
	}
}

// NoCachePolicy returns a policy that disables caching entirely.
func NoCachePolicy() Policy {
	return Policy{}
}

// ShouldCache reports whether the data type is cacheable under this
// policy.
func (p Policy) ShouldCache(dataType string) bool {
	for _, skip := range p.SkipTypes {
		if skip == dataType {
			return false
		}
	}
	return p.EffectiveTTL(dataType) > 0
}

// EffectiveTTL returns the TTL for the data type, applying the default
// and clamping to MaxTTL.
func (p Policy) EffectiveTTL(dataType string) time.Duration {
	ttl := p.DefaultTTL
	if override, ok := p.TTLByType[dataType]; ok {
		ttl = override
	}

	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}
	return ttl
}
