package core_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/francis-ohara/model-garden-agent/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	t.Run("Should carry code, message and details", func(t *testing.T) {
		base := fmt.Errorf("endpoint not found")
		err := core.NewError(base, "NOT_FOUND", map[string]any{"endpoint_id": "123"})

		assert.Equal(t, "NOT_FOUND", err.Code)
		assert.Equal(t, "endpoint not found", err.Message)
		assert.Equal(t, "123", err.Details["endpoint_id"])
		assert.Equal(t, "NOT_FOUND: endpoint not found", err.Error())
	})

	t.Run("Should unwrap to the underlying error", func(t *testing.T) {
		base := errors.New("boom")
		err := core.NewError(base, "INTERNAL", nil)

		assert.ErrorIs(t, err, base)
	})

	t.Run("Should match through errors.As", func(t *testing.T) {
		wrapped := fmt.Errorf("context: %w", core.NewError(errors.New("quota"), "RESOURCE_EXHAUSTED", nil))

		var coreErr *core.Error
		require.True(t, errors.As(wrapped, &coreErr))
		assert.Equal(t, "RESOURCE_EXHAUSTED", coreErr.Code)
	})

	t.Run("Should handle nil underlying error", func(t *testing.T) {
		err := core.NewError(nil, "MISSING_CONFIG", nil)

		assert.Equal(t, "MISSING_CONFIG", err.Error())
		assert.NoError(t, err.Unwrap())
	})
}

func TestCodeOf(t *testing.T) {
	t.Run("Should return code for wrapped core errors", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", core.NewError(errors.New("x"), "API_ERROR", nil))
		assert.Equal(t, "API_ERROR", core.CodeOf(err))
	})

	t.Run("Should return empty string for plain errors", func(t *testing.T) {
		assert.Equal(t, "", core.CodeOf(errors.New("plain")))
	})
}
