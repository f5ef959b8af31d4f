// Package gen synthesizes annotated entity, DTO and validator class source
// from normalized column metadata.
package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("schemagen: missing configuration")
	// ErrGenerationFailed indicates a class generation failure.
	ErrGenerationFailed = errors.New("schemagen: class generation failed")
	// ErrMalformedMetadata indicates a metadata row violating the adapter
	// contract. Unlike type-token fallbacks, this is surfaced to the caller.
	ErrMalformedMetadata = errors.New("schemagen: malformed column metadata")
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("schemagen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("schemagen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a class generation error.
type GenerationError struct {
	Class   string // class name
	Table   string // source table or module name
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("schemagen: generation error")
	if e.Class != "" {
		b.WriteString(" on class ")
		b.WriteString(e.Class)
	}
	if e.Table != "" {
		b.WriteString(" (table: ")
		b.WriteString(e.Table)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(class, table, message string, cause error) *GenerationError {
	return &GenerationError{
		Class:   class,
		Table:   table,
		Message: message,
		Cause:   cause,
	}
}

// MetadataError represents a structural violation of the metadata adapter
// contract (missing or mistyped row values).
type MetadataError struct {
	Table   string
	Column  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *MetadataError) Error() string {
	var b strings.Builder
	b.WriteString("schemagen: metadata error")
	if e.Table != "" {
		b.WriteString(" on table ")
		b.WriteString(e.Table)
	}
	if e.Column != "" {
		b.WriteString(" column ")
		b.WriteString(e.Column)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *MetadataError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for MetadataError.
func (e *MetadataError) Is(target error) bool {
	return target == ErrMalformedMetadata
}

// NewMetadataError creates a new MetadataError.
func NewMetadataError(table, column, message string, cause error) *MetadataError {
	return &MetadataError{
		Table:   table,
		Column:  column,
		Message: message,
		Cause:   cause,
	}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsMetadataError reports whether the error is a MetadataError.
func IsMetadataError(err error) bool {
	var metaErr *MetadataError
	return errors.As(err, &metaErr)
}
