package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"

	"github.com/francis-ohara/model-garden-agent/engine/tool"
	"github.com/francis-ohara/model-garden-agent/pkg/logger"
	"github.com/francis-ohara/model-garden-agent/pkg/version"
)

// SSEConfig holds the HTTP transport configuration.
type SSEConfig struct {
	Host            string
	Port            int
	BaseURL         string
	ShutdownTimeout time.Duration
}

func (c *SSEConfig) addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *SSEConfig) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return "http://" + c.addr()
}

// ServeSSE hosts the MCP server over SSE on a gin router, with a health
// endpoint for probes. It blocks until the context is canceled, then shuts
// down gracefully.
func ServeSSE(ctx context.Context, registry *tool.Registry, cfg *SSEConfig) error {
	log := logger.FromContext(ctx)
	srv, err := BuildServer(ctx, registry)
	if err != nil {
		return err
	}
	sseServer := server.NewSSEServer(srv, server.WithBaseURL(cfg.baseURL()))

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			p := param.Path
			if param.Request != nil && param.Request.URL != nil {
				p = param.Request.URL.EscapedPath()
			}
			return fmt.Sprintf("[%s] %s %s %d %s\n",
				param.TimeStamp.Format("2006-01-02 15:04:05"),
				param.Method,
				p,
				param.StatusCode,
				param.Latency,
			)
		},
	}))
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"version":   version.Get().Version,
		})
	})
	router.Any("/sse", gin.WrapH(sseServer))
	router.Any("/message", gin.WrapH(sseServer))

	httpServer := &http.Server{
		Addr:        cfg.addr(),
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// No write deadline: SSE streams stay open for the client's lifetime.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("serving MCP over SSE", "addr", cfg.addr(), "base_url", cfg.baseURL())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
			return
		}
		errChan <- nil
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("MCP server shutdown failed", "error", err)
		return err
	}
	log.Info("MCP server stopped gracefully")
	return nil
}
