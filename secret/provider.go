package secret

import "context"

// Provider fetches credential material (API keys, signing keys, bearer
// tokens) from one backend: the process environment, a static map, or
// an external store.
//
// Contract:
//   - Resolve returns the secret for ref or an error; it never returns
//     a partial value.
//   - Implementations are safe for concurrent use.
//   - Implementations must never log resolved values.
type Provider interface {
	Name() string
	Resolve(ctx context.Context, ref string) (string, error)
	Close() error
}
