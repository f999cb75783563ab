package tool

import (
	"context"
	"strings"

	"github.com/francis-ohara/model-garden-agent/engine/core"
	"github.com/francis-ohara/model-garden-agent/engine/schema"
	"github.com/francis-ohara/model-garden-agent/engine/vertex"
)

var deleteEndpointInputSchema = &schema.Schema{
	"type":     "object",
	"required": []string{"endpoint_id"},
	"properties": map[string]any{
		"endpoint_id": map[string]any{
			"type":        "string",
			"description": "The ID of the endpoint to delete (the numeric ID, not the full resource name).",
		},
	},
}

type deleteEndpointArgs struct {
	EndpointID string `json:"endpoint_id"`
}

// NewEndpointDeleteTool deletes an endpoint by ID, undeploying any models
// still on it first.
func NewEndpointDeleteTool(service GardenService) Tool {
	return New(Definition{
		ID: "delete_endpoint",
		Description: "Deletes a Vertex AI endpoint by ID. Models still deployed on the " +
			"endpoint are undeployed first.",
		InputSchema: deleteEndpointInputSchema,
		Handler: func(ctx context.Context, payload map[string]any) Envelope {
			args, err := decodeArgs[deleteEndpointArgs](payload)
			if err != nil {
				return Error(err.Error())
			}
			endpointID := strings.ToLower(strings.TrimSpace(args.EndpointID))
			if err := service.DeleteEndpoint(ctx, endpointID, true); err != nil {
				return deleteEndpointError(endpointID, err)
			}
			return Successf("Deleted endpoint: %s", endpointID)
		},
	})
}

func deleteEndpointError(endpointID string, err error) Envelope {
	detail := errDetail(err)
	switch core.CodeOf(err) {
	case vertex.ErrCodeNotFound:
		return Errorf("Endpoint with ID '%s' not found. Please verify the endpoint ID "+
			"and try again. Details: %s", endpointID, detail)
	case vertex.ErrCodeInvalidArgument:
		return Errorf("Invalid endpoint ID format: %s. Please provide a valid endpoint ID.", detail)
	case "":
		return Errorf("An unexpected error occurred during endpoint deletion: %s", detail)
	default:
		return Errorf("Google Cloud API error during endpoint deletion: %s. "+
			"Please check your project's permissions.", detail)
	}
}
