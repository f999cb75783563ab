package vertex

import "time"

// DeployOption is one verified hardware configuration a model can be
// deployed with, in the order the catalog recommends them.
type DeployOption struct {
	Index            int
	Title            string
	MachineType      string
	AcceleratorType  string
	AcceleratorCount int32
	ContainerImage   string
	SampleRequest    string
}

// HasAccelerator reports whether the option pins both an accelerator type
// and a non-zero count. Options may specify CPU-only machine shapes.
func (o DeployOption) HasAccelerator() bool {
	return o.AcceleratorType != "" && o.AcceleratorCount > 0
}

// DeploymentSpec describes a single deploy request. Option selects one of
// the model's verified configurations; when nil the service picks its own
// default hardware for the model.
type DeploymentSpec struct {
	Model               ModelID
	EndpointDisplayName string
	ModelDisplayName    string
	Option              *DeployOption
}

// Deployment reports the resources created by a successful deploy.
type Deployment struct {
	Endpoint       string
	Model          string
	PublisherModel string
}

// EndpointInfo is the subset of endpoint state surfaced to users.
type EndpointInfo struct {
	ID          string
	Name        string
	DisplayName string
	Active      bool
	CreateTime  time.Time
}
