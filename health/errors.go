package health

import "errors"

var (
	// ErrCheckFailed marks a component that failed its probe, such as an
	// unreachable provider.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout marks a check that did not finish within the
	// aggregator's window. A hung provider probe surfaces this way.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckerNotFound is returned when a named check is not registered.
	ErrCheckerNotFound = errors.New("health: checker not found")
)
