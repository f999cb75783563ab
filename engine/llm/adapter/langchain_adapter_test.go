package llmadapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	messages []llms.MessageContent
	opts     llms.CallOptions
	response *llms.ContentResponse
	err      error
}

func (m *fakeModel) GenerateContent(
	_ context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*llms.ContentResponse, error) {
	m.messages = messages
	for _, opt := range options {
		opt(&m.opts)
	}
	return m.response, m.err
}

func (m *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func textResponse(content string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: content}}}
}

func TestLangChainAdapter_GenerateContent(t *testing.T) {
	t.Run("Should prepend the system prompt and map roles", func(t *testing.T) {
		model := &fakeModel{response: textResponse("hello")}
		adapter, err := NewLangChainAdapter(model)
		require.NoError(t, err)
		resp, err := adapter.GenerateContent(context.Background(), &LLMRequest{
			SystemPrompt: "You are helpful.",
			Messages: []Message{
				{Role: RoleUser, Content: "hi"},
				{Role: RoleAssistant, Content: "hello"},
				{Role: RoleUser, Content: "list models"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "hello", resp.Content)
		require.Len(t, model.messages, 4)
		assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
		assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
		assert.Equal(t, llms.ChatMessageTypeAI, model.messages[2].Role)
		assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[3].Role)
	})
	t.Run("Should carry tool calls and tool responses as parts", func(t *testing.T) {
		model := &fakeModel{response: textResponse("done")}
		adapter, err := NewLangChainAdapter(model)
		require.NoError(t, err)
		args := json.RawMessage(`{"model_filter":"gemma"}`)
		_, err = adapter.GenerateContent(context.Background(), &LLMRequest{
			Messages: []Message{
				{Role: RoleUser, Content: "find gemma models"},
				{Role: RoleAssistant, ToolCalls: []ToolCall{
					{ID: "call-1", Name: "list_deployable_models", Arguments: args},
				}},
				{Role: RoleTool, ToolResults: []ToolResult{
					{ID: "call-1", Name: "list_deployable_models", Content: `{"status":"success"}`},
				}},
			},
		})
		require.NoError(t, err)
		require.Len(t, model.messages, 3)

		assistant := model.messages[1]
		require.Len(t, assistant.Parts, 1)
		call, ok := assistant.Parts[0].(llms.ToolCall)
		require.True(t, ok)
		assert.Equal(t, "call-1", call.ID)
		assert.Equal(t, "list_deployable_models", call.FunctionCall.Name)
		assert.JSONEq(t, string(args), call.FunctionCall.Arguments)

		toolMsg := model.messages[2]
		require.Len(t, toolMsg.Parts, 1)
		result, ok := toolMsg.Parts[0].(llms.ToolCallResponse)
		require.True(t, ok)
		assert.Equal(t, "call-1", result.ToolCallID)
		assert.Equal(t, `{"status":"success"}`, result.Content)
	})
	t.Run("Should pass tools and temperature through call options", func(t *testing.T) {
		model := &fakeModel{response: textResponse("ok")}
		adapter, err := NewLangChainAdapter(model)
		require.NoError(t, err)
		_, err = adapter.GenerateContent(context.Background(), &LLMRequest{
			Messages: []Message{{Role: RoleUser, Content: "hi"}},
			Tools: []ToolDefinition{{
				Name:        "list_endpoints",
				Description: "Lists endpoints.",
				Parameters:  map[string]any{"type": "object"},
			}},
			Options: CallOptions{Temperature: 0.2, MaxTokens: 512},
		})
		require.NoError(t, err)
		assert.InDelta(t, 0.2, model.opts.Temperature, 1e-9)
		assert.Equal(t, 512, model.opts.MaxTokens)
		require.Len(t, model.opts.Tools, 1)
		assert.Equal(t, "list_endpoints", model.opts.Tools[0].Function.Name)
	})
	t.Run("Should convert tool calls in the response", func(t *testing.T) {
		model := &fakeModel{response: &llms.ContentResponse{
			Choices: []*llms.ContentChoice{{
				ToolCalls: []llms.ToolCall{{
					ID:   "call-9",
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      "run_inference",
						Arguments: `{"endpoint_id":"9194","prompt":"hi"}`,
					},
				}},
			}},
		}}
		adapter, err := NewLangChainAdapter(model)
		require.NoError(t, err)
		resp, err := adapter.GenerateContent(context.Background(), &LLMRequest{
			Messages: []Message{{Role: RoleUser, Content: "run it"}},
		})
		require.NoError(t, err)
		require.Len(t, resp.ToolCalls, 1)
		assert.Equal(t, "call-9", resp.ToolCalls[0].ID)
		assert.Equal(t, "run_inference", resp.ToolCalls[0].Name)
		assert.JSONEq(t, `{"endpoint_id":"9194","prompt":"hi"}`, string(resp.ToolCalls[0].Arguments))
	})
	t.Run("Should reject an empty response", func(t *testing.T) {
		model := &fakeModel{response: &llms.ContentResponse{}}
		adapter, err := NewLangChainAdapter(model)
		require.NoError(t, err)
		_, err = adapter.GenerateContent(context.Background(), &LLMRequest{
			Messages: []Message{{Role: RoleUser, Content: "hi"}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty response")
	})
	t.Run("Should require a model", func(t *testing.T) {
		_, err := NewLangChainAdapter(nil)
		require.Error(t, err)
	})
}

func TestValidateConversation(t *testing.T) {
	t.Run("Should accept a well-formed conversation", func(t *testing.T) {
		err := ValidateConversation([]Message{
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "1", Name: "list_endpoints"}}},
			{Role: RoleTool, ToolResults: []ToolResult{{ID: "1", Name: "list_endpoints"}}},
			{Role: RoleAssistant, Content: "done"},
		})
		require.NoError(t, err)
	})
	t.Run("Should reject tool calls outside assistant messages", func(t *testing.T) {
		err := ValidateConversation([]Message{
			{Role: RoleUser, ToolCalls: []ToolCall{{ID: "1"}}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot contain ToolCalls")
	})
	t.Run("Should reject tool results outside tool messages", func(t *testing.T) {
		err := ValidateConversation([]Message{
			{Role: RoleAssistant, ToolResults: []ToolResult{{ID: "1"}}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot contain ToolResults")
	})
}
