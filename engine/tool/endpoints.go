package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/francis-ohara/model-garden-agent/engine/core"
	"github.com/francis-ohara/model-garden-agent/engine/schema"
	"github.com/francis-ohara/model-garden-agent/engine/vertex"
)

// endpointTimeLayout renders creation times like "June 04, 2025 at 06:45 PM UTC".
const endpointTimeLayout = "January 02, 2006 at 03:04 PM MST"

var listEndpointsInputSchema = &schema.Schema{
	"type":       "object",
	"properties": map[string]any{},
}

// NewEndpointListTool lists the Model Garden endpoints in the configured
// project and location with their deployment state.
func NewEndpointListTool(service GardenService) Tool {
	return New(Definition{
		ID: "list_endpoints",
		Description: "Lists all Vertex AI endpoints created through Model Garden in the " +
			"current project and location, with each endpoint's ID, display name, " +
			"deployment status, and creation time.",
		InputSchema: listEndpointsInputSchema,
		Handler: func(ctx context.Context, _ map[string]any) Envelope {
			endpoints, err := service.ListEndpoints(ctx)
			if err != nil {
				if core.CodeOf(err) == "" {
					return Errorf("An unexpected error occurred while listing endpoints: %s", errDetail(err))
				}
				return Errorf("Google Cloud API error while listing endpoints: %s. "+
					"Please check your project's permissions and network connectivity.", errDetail(err))
			}
			if len(endpoints) == 0 {
				return Success("No Model Garden endpoints found in this project and location.")
			}
			return Success("Here are your Model Garden endpoints:\n\n" + formatEndpoints(endpoints))
		},
	})
}

func formatEndpoints(endpoints []vertex.EndpointInfo) string {
	blocks := make([]string, 0, len(endpoints))
	for _, endpoint := range endpoints {
		state := "Inactive"
		if endpoint.Active {
			state = "Active"
		}
		blocks = append(blocks, fmt.Sprintf(
			"- ID: %s\n  Display Name: %s\n  Status: %s\n  Created: %s",
			endpoint.ID,
			endpoint.DisplayName,
			state,
			endpoint.CreateTime.Format(endpointTimeLayout),
		))
	}
	return strings.Join(blocks, "\n\n")
}
