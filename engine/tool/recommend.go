package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/francis-ohara/model-garden-agent/engine/core"
	"github.com/francis-ohara/model-garden-agent/engine/schema"
	"github.com/francis-ohara/model-garden-agent/engine/vertex"
)

var recommendInputSchema = &schema.Schema{
	"type":     "object",
	"required": []string{"model_id"},
	"properties": map[string]any{
		"model_id": map[string]any{
			"type":        "string",
			"description": "The ID of the model in Model Garden (e.g., \"google/gemma3@gemma-3-1b-it\").",
		},
	},
}

type recommendArgs struct {
	ModelID string `json:"model_id"`
}

// NewDeployConfigTool fetches the verified deployment configurations for a
// model and formats them as an indexed list the user can pick from.
func NewDeployConfigTool(service GardenService) Tool {
	return New(Definition{
		ID: "get_recommended_deployment_config",
		Description: "Fetches and formats the recommended deployment configurations for a " +
			"Model Garden model, listed with a numbered index, machine type, accelerator, " +
			"and container image.",
		InputSchema: recommendInputSchema,
		Handler: func(ctx context.Context, payload map[string]any) Envelope {
			args, err := decodeArgs[recommendArgs](payload)
			if err != nil {
				return Error(err.Error())
			}
			model, err := vertex.ParseModelID(args.ModelID)
			if err != nil {
				return Errorf("Invalid model ID format: %s. Please provide a valid model ID "+
					"to get deployment recommendations.", errDetail(err))
			}
			options, err := service.ListDeployOptions(ctx, model)
			if err != nil {
				return recommendError(model, err)
			}
			if len(options) == 0 {
				return Warning(fmt.Sprintf("No specific deployment options found for model '%s'. "+
					"This might mean the model has default configurations or is not directly "+
					"deployable via this method.", model))
			}
			return Success(formatDeployOptions(model, options))
		},
	})
}

func formatDeployOptions(model vertex.ModelID, options []vertex.DeployOption) string {
	blocks := make([]string, 0, len(options))
	for _, opt := range options {
		lines := []string{fmt.Sprintf("**Option %d:**", opt.Index)}
		if opt.MachineType != "" {
			lines = append(lines, "  - Machine Type: "+opt.MachineType)
			if opt.HasAccelerator() {
				lines = append(lines,
					"  - Accelerator Type: "+opt.AcceleratorType,
					fmt.Sprintf("  - Accelerator Count: %d", opt.AcceleratorCount),
				)
			}
		}
		if opt.ContainerImage != "" {
			lines = append(lines, "  - Container Image: "+opt.ContainerImage)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return fmt.Sprintf("Recommended deployment options for '%s':\n\n%s",
		model, strings.Join(blocks, "\n\n"))
}

func recommendError(model vertex.ModelID, err error) Envelope {
	detail := errDetail(err)
	switch core.CodeOf(err) {
	case vertex.ErrCodeNotFound:
		return Errorf("Model '%s' not found in Model Garden. Cannot fetch deployment "+
			"recommendations. Details: %s", model, detail)
	case vertex.ErrCodeInvalidArgument:
		return Errorf("Invalid model ID format: %s. Please provide a valid model ID "+
			"to get deployment recommendations.", detail)
	case "":
		return Errorf("An unexpected error occurred while fetching deployment recommendations: %s", detail)
	default:
		return Errorf("Google Cloud API error when fetching deployment recommendations: %s. "+
			"Please check your project's permissions.", detail)
	}
}
