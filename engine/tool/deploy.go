package tool

import (
	"context"

	"github.com/francis-ohara/model-garden-agent/engine/core"
	"github.com/francis-ohara/model-garden-agent/engine/schema"
	"github.com/francis-ohara/model-garden-agent/engine/vertex"
)

var deployInputSchema = &schema.Schema{
	"type":     "object",
	"required": []string{"model_id"},
	"properties": map[string]any{
		"model_id": map[string]any{
			"type":        "string",
			"description": "The ID of the model in Model Garden (e.g., \"google/gemma3@gemma-3-1b-it\").",
		},
		"endpoint_display_name": map[string]any{
			"type":        "string",
			"description": "The display name for the new endpoint.",
		},
		"model_display_name": map[string]any{
			"type":        "string",
			"description": "The display name for the deployed model.",
		},
		"option_index": map[string]any{
			"type":    "integer",
			"minimum": 0,
			"description": "The index of the deployment option to use, as returned by " +
				"get_recommended_deployment_config. If not provided, the service picks " +
				"the default configuration.",
		},
	},
}

type deployToolArgs struct {
	ModelID             string `json:"model_id"`
	EndpointDisplayName string `json:"endpoint_display_name"`
	ModelDisplayName    string `json:"model_display_name"`
	OptionIndex         *int   `json:"option_index"`
}

// NewModelDeployTool deploys a Model Garden or Hugging Face model to a new
// endpoint, optionally pinning one of its recommended configurations.
func NewModelDeployTool(service GardenService) Tool {
	return New(Definition{
		ID: "deploy_model_to_endpoint",
		Description: "Deploys a Vertex AI Model Garden model to an endpoint. Accepts an " +
			"optional option_index selecting one of the model's recommended deployment " +
			"configurations; otherwise the default configuration is used.",
		InputSchema: deployInputSchema,
		Handler: func(ctx context.Context, payload map[string]any) Envelope {
			args, err := decodeArgs[deployToolArgs](payload)
			if err != nil {
				return Error(err.Error())
			}
			model, err := vertex.ParseModelID(args.ModelID)
			if err != nil {
				return Errorf("Invalid model ID or deployment parameters: %s. "+
					"Please check the model ID and try again.", errDetail(err))
			}
			spec := vertex.DeploymentSpec{
				Model:               model,
				EndpointDisplayName: args.EndpointDisplayName,
				ModelDisplayName:    args.ModelDisplayName,
			}
			if args.OptionIndex != nil {
				options, err := service.ListDeployOptions(ctx, model)
				if err != nil {
					return deployError(service, model, err)
				}
				idx := *args.OptionIndex
				if idx < 0 || idx >= len(options) {
					return Errorf("Invalid option index %d for model '%s'.", idx, model)
				}
				spec.Option = &options[idx]
			}
			deployment, err := service.Deploy(ctx, spec)
			if err != nil {
				return deployError(service, model, err)
			}
			return Successf("Deployed model to endpoint: %s", deployment.Endpoint)
		},
	})
}

func deployError(service GardenService, model vertex.ModelID, err error) Envelope {
	detail := errDetail(err)
	switch core.CodeOf(err) {
	case vertex.ErrCodeInvalidArgument:
		return Errorf("Invalid model ID or deployment parameters: %s. "+
			"Please check the model ID and try again.", detail)
	case vertex.ErrCodeNotFound:
		return Errorf("Model '%s' not found in Model Garden. Please verify the model ID "+
			"and try again. Details: %s", model, detail)
	case vertex.ErrCodeUnavailable:
		return Errorf("Deployment failed due to service unavailability (503 error) for "+
			"model '%s'. This often means the requested resources (based on the model's "+
			"default/recommended configuration) are temporarily overloaded or unavailable "+
			"in the '%s' region. Please try deploying again, or consider exploring "+
			"different deployment configurations or regions using the "+
			"'get_recommended_deployment_config' tool if the issue persists. Details: %s",
			model, service.Location(), detail)
	case "":
		return Errorf("An unexpected error occurred during model deployment: %s", detail)
	default:
		return Errorf("Google Cloud API error during deployment: %s. "+
			"Please check your project's permissions and quota.", detail)
	}
}
