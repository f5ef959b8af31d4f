package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Dialect", "oracle", "unknown dialect")

		assert.Contains(t, err.Error(), "config error")
		assert.Contains(t, err.Error(), "Dialect")
		assert.Contains(t, err.Error(), "oracle")
		assert.Contains(t, err.Error(), "unknown dialect")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Package", nil, "cannot be empty")
		assert.Contains(t, err.Error(), "Package")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Package", nil, "cannot be empty")
		assert.True(t, errors.Is(err, ErrMissingConfig))
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		assert.True(t, IsConfigError(NewConfigError("Package", nil, "missing")))
		assert.False(t, IsConfigError(errors.New("other")))
		assert.False(t, IsConfigError(nil))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with cause", func(t *testing.T) {
		cause := errors.New("render failed")
		err := NewGenerationError("User", "user", "render", cause)

		assert.Contains(t, err.Error(), "User")
		assert.Contains(t, err.Error(), "user")
		assert.Contains(t, err.Error(), "render failed")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewGenerationError("User", "user", "render", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrGenerationFailed", func(t *testing.T) {
		err := NewGenerationError("User", "user", "render", nil)
		assert.True(t, errors.Is(err, ErrGenerationFailed))
	})

	t.Run("IsGenerationError helper", func(t *testing.T) {
		assert.True(t, IsGenerationError(NewGenerationError("User", "user", "render", nil)))
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}

func TestMetadataError(t *testing.T) {
	t.Run("Error message names table and column", func(t *testing.T) {
		err := NewMetadataError("user", "user_id", "missing type", nil)
		assert.Contains(t, err.Error(), "user")
		assert.Contains(t, err.Error(), "user_id")
		assert.Contains(t, err.Error(), "missing type")
	})

	t.Run("Is matches ErrMalformedMetadata", func(t *testing.T) {
		err := NewMetadataError("user", "user_id", "missing type", nil)
		assert.True(t, errors.Is(err, ErrMalformedMetadata))
		assert.True(t, IsMetadataError(err))
	})
}
