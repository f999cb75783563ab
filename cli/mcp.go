package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/francis-ohara/model-garden-agent/engine/mcp"
	"github.com/francis-ohara/model-garden-agent/engine/tool"
	"github.com/francis-ohara/model-garden-agent/engine/vertex"
)

// MCPCmd returns the MCP tool-server command.
func MCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Garden tools as an MCP server",
		Long: "Expose the Model Garden tools over the Model Context Protocol so external " +
			"agent hosts can drive them, either over stdio or over SSE.",
		RunE: handleMCPCmd,
	}
	cmd.Flags().String("transport", "", "Transport to serve on (stdio or sse)")
	cmd.Flags().String("host", "", "Host to bind the SSE server to")
	cmd.Flags().Int("port", 0, "Port to run the SSE server on")
	cmd.Flags().String("base-url", "", "Base URL advertised by the SSE server")
	return cmd
}

func handleMCPCmd(cmd *cobra.Command, _ []string) error {
	overrides, err := mcpOverrides(cmd)
	if err != nil {
		return err
	}
	ctx, cfg, err := bootstrap(cmd, overrides)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	garden, err := vertex.NewService(ctx, cfg.Google.Project, cfg.Google.Location)
	if err != nil {
		return err
	}
	defer garden.Close()

	registry := tool.NewRegistry()
	if err := tool.RegisterDefaults(ctx, registry, garden); err != nil {
		return err
	}
	defer registry.Close()

	switch cfg.MCP.Transport {
	case "stdio":
		return mcp.ServeStdio(ctx, registry)
	case "sse":
		return mcp.ServeSSE(ctx, registry, &mcp.SSEConfig{
			Host:    cfg.MCP.Host,
			Port:    cfg.MCP.Port,
			BaseURL: cfg.MCP.BaseURL,
		})
	default:
		return fmt.Errorf("unsupported MCP transport %q", cfg.MCP.Transport)
	}
}

// mcpOverrides maps changed flags onto config paths for the loader. Only
// flags the user actually set are passed along.
func mcpOverrides(cmd *cobra.Command) (map[string]any, error) {
	overrides := make(map[string]any)
	if cmd.Flags().Changed("transport") {
		transport, err := cmd.Flags().GetString("transport")
		if err != nil {
			return nil, fmt.Errorf("failed to get transport flag: %w", err)
		}
		overrides["mcp.transport"] = transport
	}
	if cmd.Flags().Changed("host") {
		host, err := cmd.Flags().GetString("host")
		if err != nil {
			return nil, fmt.Errorf("failed to get host flag: %w", err)
		}
		overrides["mcp.host"] = host
	}
	if cmd.Flags().Changed("port") {
		port, err := cmd.Flags().GetInt("port")
		if err != nil {
			return nil, fmt.Errorf("failed to get port flag: %w", err)
		}
		overrides["mcp.port"] = port
	}
	if cmd.Flags().Changed("base-url") {
		baseURL, err := cmd.Flags().GetString("base-url")
		if err != nil {
			return nil, fmt.Errorf("failed to get base-url flag: %w", err)
		}
		overrides["mcp.base_url"] = baseURL
	}
	return overrides, nil
}
