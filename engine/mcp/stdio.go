package mcp

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/francis-ohara/model-garden-agent/engine/tool"
	"github.com/francis-ohara/model-garden-agent/pkg/logger"
)

// ServeStdio runs the MCP server over stdin/stdout until the context is
// canceled or the host closes the pipe. This is the transport host-spawned
// servers use.
func ServeStdio(ctx context.Context, registry *tool.Registry) error {
	log := logger.FromContext(ctx)
	srv, err := BuildServer(ctx, registry)
	if err != nil {
		return err
	}
	log.Info("serving MCP over stdio")
	stdio := server.NewStdioServer(srv)
	err = stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
