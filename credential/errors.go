package credential

import "errors"

// Sentinel errors for outbound credential handling.
var (
	ErrMissingValue      = errors.New("credential: missing credential value")
	ErrMissingSigningKey = errors.New("credential: missing signing key")
	ErrNilSource         = errors.New("credential: nil credential source")
	ErrUnsupportedMethod = errors.New("credential: unsupported signing method")
)
