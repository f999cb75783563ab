package vertex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/francis-ohara/model-garden-agent/engine/core"
)

// ModelID identifies a deployable model in one of the two catalogs served by
// Model Garden: first-party publisher models ("google/gemma3@gemma-3-1b-it",
// optionally prefixed with "publishers/.../models/...") and Hugging Face
// models ("qwen/qwen3-1.7b"). Publisher models carry a version after "@";
// Hugging Face IDs never do.
type ModelID struct {
	Publisher   string
	Model       string
	Version     string
	HuggingFace bool
}

// ParseModelID normalizes and parses a user-supplied model identifier.
// Input is lowercased before parsing, matching how the catalog stores IDs,
// so callers can pass display names verbatim.
func ParseModelID(raw string) (ModelID, error) {
	id := strings.ToLower(strings.TrimSpace(raw))
	if id == "" {
		return ModelID{}, core.NewError(
			errors.New("model ID is empty"),
			ErrCodeInvalidArgument,
			map[string]any{"model_id": raw},
		)
	}
	fullName := strings.HasPrefix(id, "publishers/")
	id = strings.TrimPrefix(id, "publishers/")
	id = strings.Replace(id, "/models/", "/", 1)

	name, version, hasVersion := strings.Cut(id, "@")
	parts := strings.Split(name, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ModelID{}, core.NewError(
			fmt.Errorf("model ID %q is not in publisher/model or organization/model form", raw),
			ErrCodeInvalidArgument,
			map[string]any{"model_id": raw},
		)
	}
	if hasVersion && version == "" {
		return ModelID{}, core.NewError(
			fmt.Errorf("model ID %q has an empty version after '@'", raw),
			ErrCodeInvalidArgument,
			map[string]any{"model_id": raw},
		)
	}
	return ModelID{
		Publisher:   parts[0],
		Model:       parts[1],
		Version:     version,
		HuggingFace: !hasVersion && !fullName,
	}, nil
}

// ResourceName returns the publisher-model resource name used in API requests,
// e.g. "publishers/google/models/gemma3@gemma-3-1b-it". For Hugging Face
// models the catalog addresses the model by the same shape without a version.
func (m ModelID) ResourceName() string {
	name := fmt.Sprintf("publishers/%s/models/%s", m.Publisher, m.Model)
	if m.Version != "" {
		name += "@" + m.Version
	}
	return name
}

// String returns the short display form, e.g. "google/gemma3@gemma-3-1b-it"
// or "qwen/qwen3-1.7b".
func (m ModelID) String() string {
	s := m.Publisher + "/" + m.Model
	if m.Version != "" {
		s += "@" + m.Version
	}
	return s
}

// HuggingFaceID returns the "{organization}/{model}" form used as the
// Hugging Face artifact reference in deploy requests.
func (m ModelID) HuggingFaceID() string {
	return m.Publisher + "/" + m.Model
}
