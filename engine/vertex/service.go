package vertex

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/francis-ohara/model-garden-agent/engine/core"
	"github.com/francis-ohara/model-garden-agent/pkg/logger"
)

// Catalog filters understood by ListPublisherModels. The first two split
// the catalog into first-party publisher models and verified Hugging Face
// wildcards; the last one narrows endpoint listings to endpoints created
// through Model Garden deploys.
const (
	gardenModelsFilter    = "is_hf_wildcard(false) AND is_deployable(true)"
	huggingFaceFilter     = "is_hf_wildcard(true) AND labels.VERIFIED_DEPLOYMENT_CONFIG=VERIFIED_DEPLOYMENT_SUCCEED"
	gardenEndpointsFilter = "labels.mg-deploy:* OR labels.mg-one-click-deploy:*"
)

// Service exposes the Model Garden operations the agent tools call. It is
// stateless by design: every method maps to a single service call (plus the
// wait on long-running operations), with no local retries, caching, or
// request batching, so server state is always authoritative.
type Service struct {
	project  string
	location string
	clients  *Clients
}

// NewService validates the project and location and dials the regional
// Vertex AI services. Both values are lowercased once here so resource
// names built later are already canonical.
func NewService(ctx context.Context, project, location string, opts ...option.ClientOption) (*Service, error) {
	project = strings.ToLower(strings.TrimSpace(project))
	location = strings.ToLower(strings.TrimSpace(location))
	if project == "" {
		return nil, core.NewError(
			errors.New("google cloud project is not configured"),
			ErrCodeMissingConfig,
			map[string]any{"env": "GOOGLE_CLOUD_PROJECT"},
		)
	}
	if location == "" {
		return nil, core.NewError(
			errors.New("google cloud location is not configured"),
			ErrCodeMissingConfig,
			map[string]any{"env": "GOOGLE_CLOUD_LOCATION"},
		)
	}
	clients, err := NewClients(ctx, location, opts...)
	if err != nil {
		return nil, err
	}
	return &Service{project: project, location: location, clients: clients}, nil
}

// Project returns the lowercased project ID the service is bound to.
func (s *Service) Project() string { return s.project }

// Location returns the lowercased region the service is bound to.
func (s *Service) Location() string { return s.location }

// Close releases the underlying client connections.
func (s *Service) Close() error { return s.clients.Close() }

func (s *Service) parent() string {
	return fmt.Sprintf("projects/%s/locations/%s", s.project, s.location)
}

// EndpointName expands a bare endpoint ID into its full resource name.
// Full resource names are accepted too; only their last segment is kept.
func (s *Service) EndpointName(endpointID string) string {
	id := lastSegment(strings.ToLower(strings.TrimSpace(endpointID)))
	return fmt.Sprintf("%s/endpoints/%s", s.parent(), id)
}

// ListDeployableModels returns catalog entries matching nameFilter,
// first-party publisher models first, then verified Hugging Face models.
// Publisher entries carry their version ("google/gemma3@gemma-3-1b-it"),
// Hugging Face entries do not. The publisher list is filtered locally by
// substring so the filter also matches version suffixes; the Hugging Face
// catalog is too large for that and is filtered server side.
func (s *Service) ListDeployableModels(ctx context.Context, nameFilter string) ([]string, error) {
	nameFilter = strings.ToLower(strings.TrimSpace(nameFilter))

	garden, err := s.listCatalog(ctx, gardenModelsFilter, true)
	if err != nil {
		return nil, classify(err, "list_publisher_models")
	}
	models := make([]string, 0, len(garden))
	for _, name := range garden {
		if nameFilter == "" || strings.Contains(name, nameFilter) {
			models = append(models, name)
		}
	}

	hfFilter := huggingFaceFilter
	if nameFilter != "" {
		hfFilter = fmt.Sprintf("%s AND (model_user_id=~%q)", huggingFaceFilter, "(?i).*"+nameFilter+".*")
	}
	huggingFace, err := s.listCatalog(ctx, hfFilter, false)
	if err != nil {
		return nil, classify(err, "list_publisher_models")
	}
	return append(models, huggingFace...), nil
}

func (s *Service) listCatalog(ctx context.Context, filter string, withVersion bool) ([]string, error) {
	it := s.clients.ModelGarden.ListPublisherModels(ctx, &aiplatformpb.ListPublisherModelsRequest{
		Parent:          "publishers/*",
		Filter:          filter,
		ListAllVersions: true,
	})
	var names []string
	for {
		model, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, catalogName(model, withVersion))
	}
	return names, nil
}

// catalogName converts a resource name like "publishers/google/models/gemma3"
// into the short form users type, appending the version for publisher models.
func catalogName(model *aiplatformpb.PublisherModel, withVersion bool) string {
	name := strings.TrimPrefix(model.GetName(), "publishers/")
	name = strings.Replace(name, "/models/", "/", 1)
	if withVersion {
		name = fmt.Sprintf("%s@%s", name, model.GetVersionId())
	}
	return name
}

// ListDeployOptions fetches the verified deployment configurations for a
// model, in the order the catalog recommends them.
func (s *Service) ListDeployOptions(ctx context.Context, model ModelID) ([]DeployOption, error) {
	publisherModel, err := s.clients.ModelGarden.GetPublisherModel(ctx, &aiplatformpb.GetPublisherModelRequest{
		Name:               model.ResourceName(),
		View:               aiplatformpb.PublisherModelView_PUBLISHER_MODEL_VIEW_FULL,
		IsHuggingFaceModel: model.HuggingFace,
	})
	if err != nil {
		return nil, classify(err, "get_publisher_model")
	}
	deploys := publisherModel.GetSupportedActions().GetMultiDeployVertex().GetMultiDeployVertex()
	options := make([]DeployOption, 0, len(deploys))
	for i, deploy := range deploys {
		opt := DeployOption{
			Index:          i,
			Title:          deploy.GetTitle(),
			ContainerImage: deploy.GetContainerSpec().GetImageUri(),
			SampleRequest:  deploy.GetDeployMetadata().GetSampleRequest(),
		}
		if spec := deploy.GetDedicatedResources().GetMachineSpec(); spec != nil {
			opt.MachineType = spec.GetMachineType()
			opt.AcceleratorCount = spec.GetAcceleratorCount()
			if spec.GetAcceleratorType() != aiplatformpb.AcceleratorType_ACCELERATOR_TYPE_UNSPECIFIED {
				opt.AcceleratorType = spec.GetAcceleratorType().String()
			}
		}
		options = append(options, opt)
	}
	return options, nil
}

// Deploy creates a model and endpoint from the given spec and blocks until
// the deploy operation finishes. Display names are lowercased to match the
// catalog's naming rules.
func (s *Service) Deploy(ctx context.Context, spec DeploymentSpec) (*Deployment, error) {
	log := logger.FromContext(ctx)
	req := &aiplatformpb.DeployRequest{Destination: s.parent()}
	if spec.Model.HuggingFace {
		req.Artifacts = &aiplatformpb.DeployRequest_HuggingFaceModelId{HuggingFaceModelId: spec.Model.HuggingFaceID()}
	} else {
		req.Artifacts = &aiplatformpb.DeployRequest_PublisherModelName{PublisherModelName: spec.Model.ResourceName()}
	}
	if name := strings.ToLower(strings.TrimSpace(spec.ModelDisplayName)); name != "" {
		req.ModelConfig = &aiplatformpb.DeployRequest_ModelConfig{ModelDisplayName: name}
	}
	if name := strings.ToLower(strings.TrimSpace(spec.EndpointDisplayName)); name != "" {
		req.EndpointConfig = &aiplatformpb.DeployRequest_EndpointConfig{EndpointDisplayName: name}
	}
	if opt := spec.Option; opt != nil {
		machine := &aiplatformpb.MachineSpec{
			MachineType:      opt.MachineType,
			AcceleratorCount: opt.AcceleratorCount,
		}
		if opt.AcceleratorType != "" {
			machine.AcceleratorType = aiplatformpb.AcceleratorType(aiplatformpb.AcceleratorType_value[opt.AcceleratorType])
		}
		req.DeployConfig = &aiplatformpb.DeployRequest_DeployConfig{
			DedicatedResources: &aiplatformpb.DedicatedResources{
				MachineSpec:     machine,
				MinReplicaCount: 1,
			},
		}
	}

	log.Info("deploying model", "model", spec.Model.String(), "destination", s.parent())
	op, err := s.clients.ModelGarden.Deploy(ctx, req)
	if err != nil {
		return nil, classify(err, "deploy")
	}
	resp, err := op.Wait(ctx)
	if err != nil {
		return nil, classify(err, "deploy")
	}
	log.Info("deploy finished", "endpoint", resp.GetEndpoint(), "model", resp.GetModel())
	return &Deployment{
		Endpoint:       resp.GetEndpoint(),
		Model:          resp.GetModel(),
		PublisherModel: resp.GetPublisherModel(),
	}, nil
}

// ListEndpoints returns the endpoints created through Model Garden deploys
// in this project and location.
func (s *Service) ListEndpoints(ctx context.Context) ([]EndpointInfo, error) {
	it := s.clients.Endpoints.ListEndpoints(ctx, &aiplatformpb.ListEndpointsRequest{
		Parent: s.parent(),
		Filter: gardenEndpointsFilter,
	})
	var endpoints []EndpointInfo
	for {
		endpoint, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify(err, "list_endpoints")
		}
		endpoints = append(endpoints, EndpointInfo{
			ID:          lastSegment(endpoint.GetName()),
			Name:        endpoint.GetName(),
			DisplayName: endpoint.GetDisplayName(),
			Active:      len(endpoint.GetTrafficSplit()) > 0,
			CreateTime:  endpoint.GetCreateTime().AsTime(),
		})
	}
	return endpoints, nil
}

func lastSegment(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// DeleteEndpoint removes an endpoint by ID. With force set, models still
// deployed on the endpoint are undeployed first, mirroring a force delete.
func (s *Service) DeleteEndpoint(ctx context.Context, endpointID string, force bool) error {
	log := logger.FromContext(ctx)
	name := s.EndpointName(endpointID)
	if force {
		endpoint, err := s.clients.Endpoints.GetEndpoint(ctx, &aiplatformpb.GetEndpointRequest{Name: name})
		if err != nil {
			return classify(err, "get_endpoint")
		}
		for _, deployed := range endpoint.GetDeployedModels() {
			log.Info("undeploying model", "endpoint", name, "deployed_model_id", deployed.GetId())
			op, err := s.clients.Endpoints.UndeployModel(ctx, &aiplatformpb.UndeployModelRequest{
				Endpoint:        name,
				DeployedModelId: deployed.GetId(),
			})
			if err != nil {
				return classify(err, "undeploy_model")
			}
			if _, err := op.Wait(ctx); err != nil {
				return classify(err, "undeploy_model")
			}
		}
	}
	op, err := s.clients.Endpoints.DeleteEndpoint(ctx, &aiplatformpb.DeleteEndpointRequest{Name: name})
	if err != nil {
		return classify(err, "delete_endpoint")
	}
	if err := op.Wait(ctx); err != nil {
		return classify(err, "delete_endpoint")
	}
	log.Info("deleted endpoint", "endpoint", name)
	return nil
}

// GenerateContent sends a prompt to the model deployed on the given
// endpoint and returns the text of the first candidate.
func (s *Service) GenerateContent(ctx context.Context, endpointID, prompt string) (string, error) {
	resp, err := s.clients.Prediction.GenerateContent(ctx, &aiplatformpb.GenerateContentRequest{
		Model: s.EndpointName(endpointID),
		Contents: []*aiplatformpb.Content{{
			Role:  "user",
			Parts: []*aiplatformpb.Part{{Data: &aiplatformpb.Part_Text{Text: prompt}}},
		}},
	})
	if err != nil {
		return "", classify(err, "generate_content")
	}
	candidates := resp.GetCandidates()
	if len(candidates) == 0 {
		return "", core.NewError(
			errors.New("model returned no candidates"),
			ErrCodeAPIError,
			map[string]any{"endpoint": s.EndpointName(endpointID)},
		)
	}
	var text strings.Builder
	for _, part := range candidates[0].GetContent().GetParts() {
		text.WriteString(part.GetText())
	}
	return text.String(), nil
}

// SampleRequest returns the sample payload attached to the model's first
// deploy option, used to show users how to call their endpoint.
func (s *Service) SampleRequest(ctx context.Context, model ModelID) (string, error) {
	options, err := s.ListDeployOptions(ctx, model)
	if err != nil {
		return "", err
	}
	if len(options) == 0 || options[0].SampleRequest == "" {
		return "", core.NewError(
			fmt.Errorf("model %s has no sample request", model),
			ErrCodeNotFound,
			map[string]any{"model_id": model.String()},
		)
	}
	return options[0].SampleRequest, nil
}
