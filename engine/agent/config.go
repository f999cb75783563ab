package agent

import (
	"context"
	"fmt"

	"github.com/francis-ohara/model-garden-agent/engine/schema"
)

// Config is the declarative definition of a conversational agent: its
// identity, the instructions that become the system prompt, the model that
// drives it, and the names of the tools it may call.
type Config struct {
	ID            string   `json:"id"             validate:"required"`
	Description   string   `json:"description"`
	Instructions  string   `json:"instructions"   validate:"required"`
	Model         string   `json:"model"          validate:"required"`
	Tools         []string `json:"tools,omitempty"`
	MaxIterations int      `json:"max_iterations" validate:"gte=1"`
}

func (c *Config) Validate(ctx context.Context) error {
	if err := schema.NewStructValidator(c).Validate(ctx); err != nil {
		return fmt.Errorf("invalid agent config: %w", err)
	}
	return nil
}
