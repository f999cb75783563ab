package tool

import (
	"context"

	"github.com/francis-ohara/model-garden-agent/engine/core"
	"github.com/francis-ohara/model-garden-agent/engine/schema"
	"github.com/francis-ohara/model-garden-agent/engine/vertex"
)

var inferenceInputSchema = &schema.Schema{
	"type":     "object",
	"required": []string{"endpoint_id", "prompt"},
	"properties": map[string]any{
		"endpoint_id": map[string]any{
			"type": "string",
			"description": "The ID of the Vertex AI endpoint the model was deployed to " +
				"(e.g. \"1234567890\"), not the full resource name.",
		},
		"prompt": map[string]any{
			"type":        "string",
			"description": "The text prompt to run inference with.",
		},
	},
}

type inferenceArgs struct {
	EndpointID string `json:"endpoint_id"`
	Prompt     string `json:"prompt"`
}

// NewInferenceTool sends a prompt to a deployed model and returns its
// response text.
func NewInferenceTool(service GardenService) Tool {
	return New(Definition{
		ID: "run_inference",
		Description: "Runs inference on a model deployed to a Vertex AI endpoint, given the " +
			"endpoint ID and a text prompt, and returns the model's response.",
		InputSchema: inferenceInputSchema,
		Handler: func(ctx context.Context, payload map[string]any) Envelope {
			args, err := decodeArgs[inferenceArgs](payload)
			if err != nil {
				return Error(err.Error())
			}
			text, err := service.GenerateContent(ctx, args.EndpointID, args.Prompt)
			if err != nil {
				return inferenceError(err)
			}
			return Success(text)
		},
	})
}

func inferenceError(err error) Envelope {
	detail := errDetail(err)
	switch core.CodeOf(err) {
	case vertex.ErrCodeNotFound:
		return Errorf("This error is likely due to an invalid endpoint ID being used to "+
			"run inference. Please ensure the endpoint ID provided is valid. Details: %s", detail)
	case vertex.ErrCodeUnavailable:
		return Errorf("The Vertex AI Service or the specific endpoint on which inference "+
			"is being run is temporarily unavailable. Please try again. Details: %s", detail)
	case "":
		return Errorf("An unexpected error occurred while running inference. Details: %s", detail)
	default:
		return Errorf("A Google API Error occurred while running inference. Details: %s", detail)
	}
}
