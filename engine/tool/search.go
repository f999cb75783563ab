package tool

import (
	"context"
	"strings"

	"github.com/francis-ohara/model-garden-agent/engine/schema"
)

var searchInputSchema = &schema.Schema{
	"type":     "object",
	"required": []string{"model_filter"},
	"properties": map[string]any{
		"model_filter": map[string]any{
			"type": "string",
			"description": "Filter string matched against model names. May only contain " +
				"letters, numbers, hyphens, underscores, and periods.",
		},
	},
}

type searchArgs struct {
	ModelFilter string `json:"model_filter"`
}

// NewModelSearchTool lists the deployable Model Garden and verified Hugging
// Face models whose names match a filter string.
func NewModelSearchTool(service GardenService) Tool {
	return New(Definition{
		ID: "list_deployable_models",
		Description: "Lists all deployable models on Vertex AI Model Garden filtered by the " +
			"given filter string. Publisher models are returned with their version " +
			"(for example \"google/gemma3@gemma-3-1b-it\"), Hugging Face models without one.",
		InputSchema: searchInputSchema,
		Handler: func(ctx context.Context, payload map[string]any) Envelope {
			args, err := decodeArgs[searchArgs](payload)
			if err != nil {
				return Error(err.Error())
			}
			models, err := service.ListDeployableModels(ctx, args.ModelFilter)
			if err != nil {
				return Error(errDetail(err))
			}
			if len(models) == 0 {
				return Error("No deployable models with the given filter were found. " +
					"Please try searching again with a different filter.")
			}
			return Successf("The number of models found is %d. The models found are: %s",
				len(models), strings.Join(models, ", "))
		},
	})
}
