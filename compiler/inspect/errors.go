package inspect

import (
	"errors"
	"fmt"
)

// ErrInspectFailed is returned when a catalog query or row scan fails.
var ErrInspectFailed = errors.New("inspect failed")

// InspectError wraps a catalog read failure with the dialect and table it
// occurred on.
type InspectError struct {
	Dialect string
	Table   string
	Cause   error
}

// Error implements the error interface.
func (e *InspectError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("inspect %s: %v", e.Dialect, e.Cause)
	}
	return fmt.Sprintf("inspect %s: table %q: %v", e.Dialect, e.Table, e.Cause)
}

// Unwrap implements the errors.Wrapper interface.
func (e *InspectError) Unwrap() error { return e.Cause }

// Is implements the errors.Is interface.
func (e *InspectError) Is(target error) bool {
	return target == ErrInspectFailed
}

func newInspectError(d, table string, cause error) *InspectError {
	return &InspectError{Dialect: d, Table: table, Cause: cause}
}

// IsInspectError reports whether err is an InspectError.
func IsInspectError(err error) bool {
	if err == nil {
		return false
	}
	var e *InspectError
	return errors.As(err, &e) || errors.Is(err, ErrInspectFailed)
}
