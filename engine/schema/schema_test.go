package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolParamsSchema() *Schema {
	return &Schema{
		"type": "object",
		"properties": map[string]any{
			"model_id": map[string]any{
				"type":        "string",
				"description": "Model Garden or Hugging Face model identifier",
			},
			"option_index": map[string]any{
				"type":    "integer",
				"minimum": 0,
			},
		},
		"required": []any{"model_id"},
	}
}

func TestSchema_Compile(t *testing.T) {
	t.Run("Should compile a valid schema", func(t *testing.T) {
		compiled, err := toolParamsSchema().Compile()
		require.NoError(t, err)
		assert.NotNil(t, compiled)
	})

	t.Run("Should return nil for nil schema", func(t *testing.T) {
		var s *Schema
		compiled, err := s.Compile()
		require.NoError(t, err)
		assert.Nil(t, compiled)
	})
}

func TestSchema_Validate(t *testing.T) {
	t.Run("Should accept parameters matching the schema", func(t *testing.T) {
		result, err := toolParamsSchema().Validate(t.Context(), map[string]any{
			"model_id":     "google/gemma-2-9b-it",
			"option_index": 1,
		})
		require.NoError(t, err)
		assert.NotNil(t, result)
	})

	t.Run("Should reject parameters missing required fields", func(t *testing.T) {
		_, err := toolParamsSchema().Validate(t.Context(), map[string]any{
			"option_index": 0,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation failed")
	})

	t.Run("Should reject wrong types", func(t *testing.T) {
		_, err := toolParamsSchema().Validate(t.Context(), map[string]any{
			"model_id":     "gemma",
			"option_index": "first",
		})
		require.Error(t, err)
	})
}

func TestParamsValidator(t *testing.T) {
	t.Run("Should pass when no schema is defined", func(t *testing.T) {
		v := NewParamsValidator(map[string]any{"anything": true}, nil, "list_endpoints")
		assert.NoError(t, v.Validate(t.Context()))
	})

	t.Run("Should treat nil params as empty object", func(t *testing.T) {
		s := &Schema{
			"type":       "object",
			"properties": map[string]any{"model_filter": map[string]any{"type": "string"}},
		}
		v := NewParamsValidator(nil, s, "list_deployable_models")
		assert.NoError(t, v.Validate(t.Context()))
	})

	t.Run("Should fail with tool id in message", func(t *testing.T) {
		v := NewParamsValidator(map[string]any{}, toolParamsSchema(), "deploy_model_to_endpoint")
		err := v.Validate(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deploy_model_to_endpoint")
	})
}
