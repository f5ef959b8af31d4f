package schemagen

import (
	"errors"
	"fmt"
)

// ErrUnsupportedDialect is returned when a requested database dialect has
// no adapter or conversion table. Callers are expected to degrade to an
// empty result rather than abort. Metadata contract violations are
// reported by compiler/gen's MetadataError instead.
var ErrUnsupportedDialect = errors.New("schemagen: unsupported dialect")

// UnsupportedDialectError reports the dialect name that had no adapter.
type UnsupportedDialectError struct {
	Dialect string
}

// Error returns the error string.
func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("schemagen: unsupported dialect %q", e.Dialect)
}

// Is reports whether the target matches the sentinel error.
func (e *UnsupportedDialectError) Is(err error) bool {
	return err == ErrUnsupportedDialect
}

// NewUnsupportedDialectError returns a new UnsupportedDialectError.
func NewUnsupportedDialectError(dialect string) *UnsupportedDialectError {
	return &UnsupportedDialectError{Dialect: dialect}
}

// IsUnsupportedDialect returns true if the error reports an unsupported dialect.
func IsUnsupportedDialect(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedDialectError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedDialect)
}
