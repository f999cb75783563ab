package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francis-ohara/model-garden-agent/engine/core"
)

func TestRootCmd(t *testing.T) {
	t.Run("Should register all subcommands", func(t *testing.T) {
		root := RootCmd()
		var names []string
		for _, sub := range root.Commands() {
			names = append(names, sub.Name())
		}
		assert.Contains(t, names, "chat")
		assert.Contains(t, names, "mcp")
		assert.Contains(t, names, "tools")
		assert.Contains(t, names, "version")
	})
	t.Run("Should default persistent flags", func(t *testing.T) {
		root := RootCmd()
		envFile, err := root.PersistentFlags().GetString("env-file")
		require.NoError(t, err)
		assert.Equal(t, ".env", envFile)
		logLevel, err := root.PersistentFlags().GetString("log-level")
		require.NoError(t, err)
		assert.Equal(t, "info", logLevel)
	})
	t.Run("Should promote log level to debug when debug flag is set", func(t *testing.T) {
		root := RootCmd()
		require.NoError(t, root.ParseFlags([]string{"--debug"}))
		require.NoError(t, root.PersistentPreRunE(root, nil))
		logLevel, err := root.PersistentFlags().GetString("log-level")
		require.NoError(t, err)
		assert.Equal(t, "debug", logLevel)
	})
}

func TestMCPOverrides(t *testing.T) {
	t.Run("Should map changed flags onto config paths", func(t *testing.T) {
		cmd := MCPCmd()
		require.NoError(t, cmd.Flags().Set("transport", "sse"))
		require.NoError(t, cmd.Flags().Set("port", "6001"))
		overrides, err := mcpOverrides(cmd)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"mcp.transport": "sse",
			"mcp.port":      6001,
		}, overrides)
	})
	t.Run("Should leave untouched flags out of the overrides", func(t *testing.T) {
		overrides, err := mcpOverrides(MCPCmd())
		require.NoError(t, err)
		assert.Empty(t, overrides)
	})
}

func TestToolsListCmd(t *testing.T) {
	t.Run("Should print the tool catalog without a live client", func(t *testing.T) {
		cmd := toolsListCmd()
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		require.NoError(t, cmd.Execute())

		listing := out.String()
		assert.Contains(t, listing, "list_deployable_models")
		assert.Contains(t, listing, "get_recommended_deployment_config")
		assert.Contains(t, listing, "deploy_model_to_endpoint")
		assert.Contains(t, listing, "list_endpoints")
		assert.Contains(t, listing, "delete_endpoint")
		assert.Contains(t, listing, "run_inference")
		assert.Contains(t, listing, "inference_request_guide")
	})
}

func TestVersionCmd(t *testing.T) {
	t.Run("Should print the binary name and build info", func(t *testing.T) {
		cmd := VersionCmd()
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "model-garden-agent")
		assert.Contains(t, out.String(), "commit:")
	})
}

func TestFormatError(t *testing.T) {
	t.Run("Should render the code of a structured error", func(t *testing.T) {
		err := core.NewError(errors.New("underlying"), "LLM_GENERATION_FAILED", nil)
		out := FormatError(err)
		assert.Contains(t, out, "Code: LLM_GENERATION_FAILED")
	})
	t.Run("Should fall back to the plain message", func(t *testing.T) {
		out := FormatError(errors.New("boom"))
		assert.Contains(t, out, "boom")
	})
	t.Run("Should return empty for nil", func(t *testing.T) {
		assert.Empty(t, FormatError(nil))
	})
}

func TestIsPathWithinDirectory(t *testing.T) {
	t.Run("Should accept paths under the directory", func(t *testing.T) {
		assert.True(t, isPathWithinDirectory("/work/project/.env", "/work/project"))
	})
	t.Run("Should reject escapes", func(t *testing.T) {
		assert.False(t, isPathWithinDirectory("/work/project/../secrets/.env", "/work/project"))
	})
}
