package tool_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francis-ohara/model-garden-agent/engine/schema"
	"github.com/francis-ohara/model-garden-agent/engine/tool"
)

func namedTool(name string) tool.Tool {
	return tool.New(tool.Definition{
		ID:          name,
		Description: "test tool",
		Handler: func(context.Context, map[string]any) tool.Envelope {
			return tool.Success("ok")
		},
	})
}

func TestRegistry(t *testing.T) {
	t.Run("Should register and find tools case-insensitively", func(t *testing.T) {
		registry := tool.NewRegistry()
		require.NoError(t, registry.Register(context.Background(), namedTool("list_endpoints")))

		found, ok := registry.Find(context.Background(), "List_Endpoints")
		require.True(t, ok)
		assert.Equal(t, "list_endpoints", found.Name())

		_, ok = registry.Find(context.Background(), "missing")
		assert.False(t, ok)
	})
	t.Run("Should reject duplicate names", func(t *testing.T) {
		registry := tool.NewRegistry()
		require.NoError(t, registry.Register(context.Background(), namedTool("run_inference")))
		err := registry.Register(context.Background(), namedTool("RUN_INFERENCE"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})
	t.Run("Should reject nil and unnamed tools", func(t *testing.T) {
		registry := tool.NewRegistry()
		require.Error(t, registry.Register(context.Background(), nil))
		require.Error(t, registry.Register(context.Background(), namedTool("  ")))
	})
	t.Run("Should list tools sorted by name", func(t *testing.T) {
		registry := tool.NewRegistry()
		require.NoError(t, registry.Register(context.Background(), namedTool("run_inference")))
		require.NoError(t, registry.Register(context.Background(), namedTool("delete_endpoint")))
		require.NoError(t, registry.Register(context.Background(), namedTool("list_endpoints")))

		all := registry.ListAll(context.Background())
		names := make([]string, 0, len(all))
		for _, item := range all {
			names = append(names, item.Name())
		}
		assert.Equal(t, []string{"delete_endpoint", "list_endpoints", "run_inference"}, names)
	})
	t.Run("Should reject registration after close", func(t *testing.T) {
		registry := tool.NewRegistry()
		require.NoError(t, registry.Close())
		require.Error(t, registry.Register(context.Background(), namedTool("late")))
		assert.Empty(t, registry.ListAll(context.Background()))
	})
}

func TestFuncTool_Call(t *testing.T) {
	echo := tool.New(tool.Definition{
		ID: "echo",
		InputSchema: &schema.Schema{
			"type":     "object",
			"required": []string{"message"},
			"properties": map[string]any{
				"message": map[string]any{"type": "string"},
			},
		},
		Handler: func(_ context.Context, args map[string]any) tool.Envelope {
			msg, _ := args["message"].(string)
			return tool.Success(msg)
		},
	})

	t.Run("Should execute with valid arguments", func(t *testing.T) {
		out, err := echo.Call(context.Background(), `{"message": "hello"}`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"status": "success", "content": "hello"}`, out)
	})
	t.Run("Should return an error envelope for schema violations", func(t *testing.T) {
		out, err := echo.Call(context.Background(), `{"unexpected": true}`)
		require.NoError(t, err)
		env := decodeEnvelope(t, out)
		assert.Equal(t, tool.StatusError, env.Status)
		assert.Contains(t, env.ErrorMessage, "invalid parameters for echo")
	})
	t.Run("Should error on malformed JSON input", func(t *testing.T) {
		_, err := echo.Call(context.Background(), `{"message":`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse tool arguments")
	})
	t.Run("Should treat empty input as an empty object", func(t *testing.T) {
		noArgs := tool.New(tool.Definition{
			ID:          "noop",
			InputSchema: &schema.Schema{"type": "object", "properties": map[string]any{}},
			Handler: func(context.Context, map[string]any) tool.Envelope {
				return tool.Success("ran")
			},
		})
		out, err := noArgs.Call(context.Background(), "")
		require.NoError(t, err)
		assert.JSONEq(t, `{"status": "success", "content": "ran"}`, out)
	})
	t.Run("Should expose a copy of the parameter schema", func(t *testing.T) {
		params := echo.ParameterSchema()
		require.NotNil(t, params)
		params["type"] = "mutated"
		assert.Equal(t, "object", echo.ParameterSchema()["type"])
	})
}
