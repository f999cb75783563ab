package tool

import (
	"context"

	"github.com/francis-ohara/model-garden-agent/engine/vertex"
)

// GardenService is the slice of the Vertex AI layer the tools call.
// *vertex.Service implements it; tests substitute a stub.
type GardenService interface {
	Project() string
	Location() string
	ListDeployableModels(ctx context.Context, nameFilter string) ([]string, error)
	ListDeployOptions(ctx context.Context, model vertex.ModelID) ([]vertex.DeployOption, error)
	Deploy(ctx context.Context, spec vertex.DeploymentSpec) (*vertex.Deployment, error)
	ListEndpoints(ctx context.Context) ([]vertex.EndpointInfo, error)
	DeleteEndpoint(ctx context.Context, endpointID string, force bool) error
	GenerateContent(ctx context.Context, endpointID, prompt string) (string, error)
	SampleRequest(ctx context.Context, model vertex.ModelID) (string, error)
}

var _ GardenService = (*vertex.Service)(nil)

// Defaults returns the full Model Garden tool set bound to service.
func Defaults(service GardenService) []Tool {
	return []Tool{
		NewModelSearchTool(service),
		NewDeployConfigTool(service),
		NewModelDeployTool(service),
		NewEndpointListTool(service),
		NewEndpointDeleteTool(service),
		NewInferenceTool(service),
		NewInferenceGuideTool(service),
	}
}

// RegisterDefaults registers the default tool set on r.
func RegisterDefaults(ctx context.Context, r *Registry, service GardenService) error {
	for _, t := range Defaults(service) {
		if err := r.Register(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
