package llmadapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/googleai/vertex"

	"github.com/francis-ohara/model-garden-agent/pkg/config"
)

// NewModel builds the langchaingo chat model that drives the assistant.
// With use_vertex_ai set, the model runs through the Vertex AI backend using
// ADC credentials and the configured project and location; otherwise it uses
// the Gemini API with an API key.
func NewModel(ctx context.Context, cfg *config.Config) (llms.Model, error) {
	if cfg.Google.UseVertexAI {
		if cfg.Google.Project == "" || cfg.Google.Location == "" {
			return nil, errors.New(
				"vertex backend requires GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION to be set")
		}
		model, err := vertex.New(ctx,
			googleai.WithCloudProject(cfg.Google.Project),
			googleai.WithCloudLocation(cfg.Google.Location),
			googleai.WithDefaultModel(cfg.Agent.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vertex model: %w", err)
		}
		return model, nil
	}
	if cfg.Google.APIKey.IsZero() {
		return nil, errors.New("gemini backend requires GOOGLE_API_KEY to be set")
	}
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.Google.APIKey.Value()),
		googleai.WithDefaultModel(cfg.Agent.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize googleai model: %w", err)
	}
	return model, nil
}

// NewClient builds the default LLMClient for the given configuration.
func NewClient(ctx context.Context, cfg *config.Config) (LLMClient, error) {
	model, err := NewModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewLangChainAdapter(model)
}
