package llm

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	llmadapter "github.com/francis-ohara/model-garden-agent/engine/llm/adapter"
	"github.com/francis-ohara/model-garden-agent/engine/tool"
	"github.com/francis-ohara/model-garden-agent/pkg/logger"
)

// toolExecutor runs the tool calls of one assistant turn concurrently.
// Results keep call order. Failures surface to the model as error envelopes
// so it can correct itself; only context cancellation aborts the turn.
type toolExecutor struct {
	registry           *tool.Registry
	maxConcurrentTools int
}

func (e *toolExecutor) Execute(
	ctx context.Context,
	toolCalls []llmadapter.ToolCall,
) ([]llmadapter.ToolResult, error) {
	if len(toolCalls) == 0 {
		return nil, nil
	}
	log := logger.FromContext(ctx)
	log.Debug("executing tool calls", "count", len(toolCalls))

	limit := e.maxConcurrentTools
	if limit <= 0 {
		limit = 1
	}
	sem := make(chan struct{}, limit)
	results := make([]llmadapter.ToolResult, len(toolCalls))
	g, ctx := errgroup.WithContext(ctx)

	for i := range toolCalls {
		call := toolCalls[i]
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return ctx.Err()
			}
			results[i] = e.executeSingle(ctx, call)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *toolExecutor) executeSingle(ctx context.Context, call llmadapter.ToolCall) llmadapter.ToolResult {
	log := logger.FromContext(ctx)
	t, found := e.registry.Find(ctx, call.Name)
	if !found {
		log.Debug("tool not found", "tool", call.Name, "tool_call_id", call.ID)
		return llmadapter.ToolResult{
			ID:      call.ID,
			Name:    call.Name,
			Content: tool.Error(fmt.Sprintf("tool not found: %s", call.Name)).JSON(),
		}
	}
	raw, err := t.Call(ctx, string(call.Arguments))
	if err != nil {
		log.Debug("tool call failed", "tool", call.Name, "tool_call_id", call.ID, "error", err)
		return llmadapter.ToolResult{
			ID:      call.ID,
			Name:    call.Name,
			Content: tool.Error(err.Error()).JSON(),
		}
	}
	return llmadapter.ToolResult{ID: call.ID, Name: call.Name, Content: raw}
}
