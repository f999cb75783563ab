package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/francis-ohara/model-garden-agent/engine/schema"
)

// Tool is the unified contract every registered tool implements. Call takes
// the model-produced arguments as a JSON object string and returns the
// serialized result envelope.
type Tool interface {
	Name() string
	Description() string
	Call(ctx context.Context, input string) (string, error)
	ParameterSchema() map[string]any
}

// Handler executes a tool against already-decoded arguments. Handlers fold
// every failure into the returned envelope so the model can read and react
// to it; they never panic the conversation loop.
type Handler func(ctx context.Context, args map[string]any) Envelope

// Definition declares a tool: its wire name, the description the model
// sees, the JSON schema of its arguments, and the handler.
type Definition struct {
	ID          string
	Description string
	InputSchema *schema.Schema
	Handler     Handler
}

// New wraps a definition into a Tool. Arguments are validated against the
// input schema before the handler runs; schema violations come back as
// error envelopes so the model can correct itself and retry.
func New(def Definition) Tool {
	return &funcTool{def: def}
}

type funcTool struct {
	def Definition
}

func (t *funcTool) Name() string        { return t.def.ID }
func (t *funcTool) Description() string { return t.def.Description }

func (t *funcTool) ParameterSchema() map[string]any {
	if t.def.InputSchema == nil {
		return nil
	}
	// Top-level copy so callers cannot add or drop keys on the registered schema.
	cloned := make(map[string]any, len(*t.def.InputSchema))
	maps.Copy(cloned, *t.def.InputSchema)
	return cloned
}

func (t *funcTool) Call(ctx context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		input = "{}"
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("failed to parse tool arguments: %w", err)
	}
	if err := schema.NewParamsValidator(args, t.def.InputSchema, t.def.ID).Validate(ctx); err != nil {
		return Error(err.Error()).JSON(), nil
	}
	return t.def.Handler(ctx, args).JSON(), nil
}

// canonicalizeName normalizes tool names for registry lookups.
func canonicalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// decodeArgs converts a decoded argument map into a typed args struct via a
// JSON round trip, keeping one decoding path for every tool.
func decodeArgs[T any](payload map[string]any) (T, error) {
	var args T
	if payload == nil {
		return args, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return args, fmt.Errorf("failed to marshal tool args: %w", err)
	}
	if err := json.Unmarshal(data, &args); err != nil {
		return args, fmt.Errorf("failed to unmarshal tool args: %w", err)
	}
	return args, nil
}
