package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/francis-ohara/model-garden-agent/engine/core"
	"github.com/francis-ohara/model-garden-agent/engine/schema"
	"github.com/francis-ohara/model-garden-agent/engine/vertex"
)

var guideInputSchema = &schema.Schema{
	"type":     "object",
	"required": []string{"model_name", "endpoint_id"},
	"properties": map[string]any{
		"model_name": map[string]any{
			"type": "string",
			"description": "Model Garden model resource name in the format " +
				"publishers/{publisher}/models/{model}@{version}, a simplified name in the " +
				"format {publisher}/{model}@{version}, or a Hugging Face model ID in the " +
				"format {organization}/{model}.",
		},
		"endpoint_id": map[string]any{
			"type":        "string",
			"description": "The ID of the Vertex AI endpoint the model was deployed to.",
		},
	},
}

type guideArgs struct {
	ModelName  string `json:"model_name"`
	EndpointID string `json:"endpoint_id"`
}

// NewInferenceGuideTool explains how to call a deployed model from client
// code, using the model's published sample request.
func NewInferenceGuideTool(service GardenService) Tool {
	return New(Definition{
		ID: "inference_request_guide",
		Description: "Returns detailed instructions with code snippets on how to run " +
			"inference against a deployed model through the Vertex AI Python SDK, the " +
			"ChatCompletion API of the OpenAI SDK, and the GenAI SDK.",
		InputSchema: guideInputSchema,
		Handler: func(ctx context.Context, payload map[string]any) Envelope {
			args, err := decodeArgs[guideArgs](payload)
			if err != nil {
				return Error(err.Error())
			}
			model, err := vertex.ParseModelID(args.ModelName)
			if err != nil {
				return Errorf("This error is likely due to an invalid model_name. Please "+
					"ensure the model name provided is valid. Details: %s", errDetail(err))
			}
			sample, err := service.SampleRequest(ctx, model)
			if err != nil {
				return guideError(err)
			}
			endpointID := strings.ToLower(strings.TrimSpace(args.EndpointID))
			return Success(buildInferenceGuide(service.Project(), service.Location(), model.String(), endpointID, sample))
		},
	})
}

func guideError(err error) Envelope {
	detail := errDetail(err)
	switch core.CodeOf(err) {
	case vertex.ErrCodeNotFound, vertex.ErrCodeInvalidArgument:
		return Errorf("This error is likely due to an invalid model_name. Please ensure "+
			"the model name provided is valid. Details: %s", detail)
	case "":
		return Errorf("An unexpected error occurred while building the inference guide. "+
			"Details: %s", detail)
	default:
		return Errorf("A Google API Error occurred while running inference. Details: %s", detail)
	}
}

// buildInferenceGuide assembles the user-facing walkthrough: the model's
// sample request followed by three runnable client snippets against the
// endpoint.
func buildInferenceGuide(project, location, modelName, endpointID, sample string) string {
	endpointName := fmt.Sprintf("projects/%s/locations/%s/endpoints/%s", project, location, endpointID)
	var b strings.Builder
	fmt.Fprintf(&b, "This is how you can run inference on the model %s deployed to the endpoint %s:\n\n", modelName, endpointID)
	fmt.Fprintf(&b, "The sample request for the model is as follows:\n\n```%s```\n\n", sample)
	b.WriteString("Based on this sample request, you can run inference on the model using:\n\n")

	fmt.Fprintf(&b, `(1) The Vertex AI Python SDK:

%[1]s
from google.cloud import aiplatform

endpoint_name = "%[2]s"
endpoint = aiplatform.Endpoint(endpoint_name=endpoint_name)
prediction = endpoint.predict(
    %[3]s
)
print(prediction.predictions[0])
%[1]s

`, "```", endpointName, inlineSampleArgs(sample))

	fmt.Fprintf(&b, `(2) The ChatCompletion API of the OpenAI SDK:

%[1]s
import openai
import google.auth

creds, project = google.auth.default()
auth_req = google.auth.transport.requests.Request()
creds.refresh(auth_req)

endpoint_url = "https://%[2]s-aiplatform.googleapis.com/v1beta1/%[3]s"

client = openai.OpenAI(base_url=endpoint_url, api_key=creds.token)

# TODO: replace with the prompt you would like to use to run inference.
prompt = "Tell me a joke"

prediction = client.chat.completions.create(
    model="",
    messages=[{"role": "user", "content": prompt}],
)
print(prediction.choices[0].message.content)
%[1]s

`, "```", location, endpointName)

	fmt.Fprintf(&b, `(3) The GenAI Python SDK:

%[1]s
from google import genai

client = genai.Client(
    vertexai=True,
    project="%[2]s",
    location="%[3]s",
)

# TODO: replace with the prompt you would like to use to run inference.
prompt = "Tell me a joke"

response = client.models.generate_content(
    model="%[4]s",
    contents=prompt,
).text
print(response)
%[1]s
`, "```", project, location, endpointName)

	return b.String()
}

// inlineSampleArgs strips the outer object braces from a sample request so
// its fields can sit inline inside a predict(...) call.
func inlineSampleArgs(sample string) string {
	s := strings.TrimSpace(sample)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	return strings.TrimSpace(s)
}
