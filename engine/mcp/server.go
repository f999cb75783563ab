// Package mcp exposes the tool registry over the Model Context Protocol so
// any MCP-speaking host can drive the Model Garden tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/francis-ohara/model-garden-agent/engine/tool"
	"github.com/francis-ohara/model-garden-agent/pkg/logger"
	"github.com/francis-ohara/model-garden-agent/pkg/version"
)

const serverName = "model-garden-agent"

// BuildServer constructs an MCP server with every registered tool attached.
func BuildServer(ctx context.Context, registry *tool.Registry) (*server.MCPServer, error) {
	log := logger.FromContext(ctx)
	srv := server.NewMCPServer(
		serverName,
		version.Get().Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithLogging(),
	)
	tools := registry.ListAll(ctx)
	if len(tools) == 0 {
		return nil, fmt.Errorf("tool registry is empty")
	}
	for _, t := range tools {
		mcpTool, err := convertTool(t)
		if err != nil {
			return nil, err
		}
		log.Debug("adding tool to MCP server", "tool", t.Name())
		srv.AddTool(mcpTool, handlerFor(t))
	}
	return srv, nil
}

// convertTool maps a registry tool to its MCP declaration, reusing the
// tool's JSON parameter schema as the raw input schema.
func convertTool(t tool.Tool) (mcp.Tool, error) {
	raw, err := json.Marshal(t.ParameterSchema())
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("failed to marshal schema for tool %s: %w", t.Name(), err)
	}
	return mcp.NewToolWithRawSchema(t.Name(), t.Description(), raw), nil
}

// handlerFor bridges MCP tool calls into the registry tool. The tool's
// envelope (success or error) travels back as text content; only transport
// failures become MCP errors.
func handlerFor(t tool.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := json.Marshal(request.GetArguments())
		if err != nil {
			return nil, fmt.Errorf("failed to encode arguments for tool %s: %w", t.Name(), err)
		}
		out, err := t.Call(ctx, string(payload))
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(out), nil
	}
}
