package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength bounds cache keys. Keyer output is far shorter
// ("oracle:<dataType>:<16 hex>"), so hitting the bound means a caller
// bypassed the keyer with a hand-built key.
const MaxKeyLength = 512

var (
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// Cache stores serialized query results between routing passes.
//
// Contract:
//   - Implementations are safe for concurrent use.
//   - Get never errors; a miss, an expired entry, and a storage fault
//     all look the same to the router, which simply re-queries.
//   - Set with ttl<=0 stores nothing; the TTL policy uses this to
//     express "do not cache".
type Cache interface {
	// Get retrieves a cached result. Returns (nil, false) on miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a result for ttl. ttl<=0 is a no-op.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes an entry. Idempotent, no error on miss.
	Delete(ctx context.Context, key string) error
}

// ValidateKey rejects keys a store could mishandle: empty or blank
// keys, keys over MaxKeyLength, and keys with line breaks (which would
// corrupt line-oriented store protocols).
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
