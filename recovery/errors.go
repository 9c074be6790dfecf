package recovery

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput indicates the raw text was empty or whitespace.
	ErrEmptyInput = errors.New("recovery: input is empty")

	// ErrNoStrategySucceeded indicates no parse strategy produced a value.
	ErrNoStrategySucceeded = errors.New("recovery: no parse strategy succeeded")

	// ErrNilSchema indicates a nil schema was provided.
	ErrNilSchema = errors.New("recovery: schema is nil")
)

// ValidationError carries field-level issues from schema validation or
// from an unrecoverable parse. It is terminal for the operation that
// produced it and is never retried.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "recovery: validation failed"
	}
	return "recovery: validation failed: " + strings.Join(e.Issues, "; ")
}

// NewValidationError creates a ValidationError from the given issues.
func NewValidationError(issues ...string) *ValidationError {
	return &ValidationError{Issues: issues}
}

func fieldIssue(field, format string, args ...any) string {
	return field + ": " + fmt.Sprintf(format, args...)
}
