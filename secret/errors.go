package secret

import "errors"

var (
	// ErrProviderNotRegistered is returned when a reference names a
	// secret backend the resolver does not know.
	ErrProviderNotRegistered = errors.New("secret: provider not registered")

	// ErrEmptySecret is returned in strict mode when a backend resolves
	// a reference to an empty string. An empty API key is always a
	// configuration mistake, never a usable credential.
	ErrEmptySecret = errors.New("secret: empty secret value")

	// ErrMissingEnv is returned when strict expansion finds ${VAR}
	// references with no matching environment variable.
	ErrMissingEnv = errors.New("secret: missing environment variables")

	// ErrEmptyRef is returned for a reference with a blank provider or
	// key part.
	ErrEmptyRef = errors.New("secret: empty secret reference")
)
