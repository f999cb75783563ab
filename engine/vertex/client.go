package vertex

import (
	"context"
	"errors"
	"fmt"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	"google.golang.org/api/option"
)

// Clients bundles the three Vertex AI service clients the agent talks to.
// All of them are dialed against the regional service endpoint because
// Model Garden resources are regional.
type Clients struct {
	ModelGarden *aiplatform.ModelGardenClient
	Endpoints   *aiplatform.EndpointClient
	Prediction  *aiplatform.PredictionClient
}

// NewClients dials the Vertex AI services for the given location. Extra
// options are appended after the regional endpoint so tests can override
// the connection.
func NewClients(ctx context.Context, location string, opts ...option.ClientOption) (*Clients, error) {
	clientOpts := make([]option.ClientOption, 0, len(opts)+1)
	clientOpts = append(clientOpts, option.WithEndpoint(fmt.Sprintf("%s-aiplatform.googleapis.com:443", location)))
	clientOpts = append(clientOpts, opts...)

	modelGarden, err := aiplatform.NewModelGardenClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create model garden client: %w", err)
	}
	endpoints, err := aiplatform.NewEndpointClient(ctx, clientOpts...)
	if err != nil {
		closeErr := modelGarden.Close()
		return nil, errors.Join(fmt.Errorf("failed to create endpoint client: %w", err), closeErr)
	}
	prediction, err := aiplatform.NewPredictionClient(ctx, clientOpts...)
	if err != nil {
		closeErr := errors.Join(modelGarden.Close(), endpoints.Close())
		return nil, errors.Join(fmt.Errorf("failed to create prediction client: %w", err), closeErr)
	}
	return &Clients{
		ModelGarden: modelGarden,
		Endpoints:   endpoints,
		Prediction:  prediction,
	}, nil
}

// Close releases all underlying connections.
func (c *Clients) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.ModelGarden != nil {
		errs = append(errs, c.ModelGarden.Close())
	}
	if c.Endpoints != nil {
		errs = append(errs, c.Endpoints.Close())
	}
	if c.Prediction != nil {
		errs = append(errs, c.Prediction.Close())
	}
	return errors.Join(errs...)
}
