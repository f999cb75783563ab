package schema

import (
	"context"
	"fmt"
)

// ParamsValidator checks a tool argument map against the tool's parameter
// schema before execution.
type ParamsValidator struct {
	id     string
	params map[string]any
	schema *Schema
}

func NewParamsValidator(params map[string]any, schema *Schema, id string) *ParamsValidator {
	return &ParamsValidator{
		id:     id,
		params: params,
		schema: schema,
	}
}

func (v *ParamsValidator) Validate(ctx context.Context) error {
	// No schema means nothing to validate against.
	if v.schema == nil {
		return nil
	}

	params := v.params
	if params == nil {
		// A schema with no required fields accepts the empty object.
		params = map[string]any{}
	}

	if _, err := v.schema.Validate(ctx, params); err != nil {
		return fmt.Errorf("invalid parameters for %s: %w", v.id, err)
	}

	return nil
}
