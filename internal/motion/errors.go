package motion

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel wrapped by every ValidationError, so
// callers can match with errors.Is without caring about the field.
var ErrInvalidInput = errors.New("motion: invalid input")

// ValidationError reports a request that violates an engine invariant:
// non-finite coordinates or negative dimensions. Degenerate-but-valid
// inputs (start == end, zero-area target boxes) do not produce one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("motion: invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalidf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
