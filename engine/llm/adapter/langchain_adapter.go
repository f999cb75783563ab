package llmadapter

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
)

// LangChainAdapter adapts a langchaingo model to the LLMClient interface.
type LangChainAdapter struct {
	model llms.Model
}

func NewLangChainAdapter(model llms.Model) (*LangChainAdapter, error) {
	if model == nil {
		return nil, fmt.Errorf("langchain adapter requires a model")
	}
	return &LangChainAdapter{model: model}, nil
}

// GenerateContent implements LLMClient.
func (a *LangChainAdapter) GenerateContent(ctx context.Context, req *LLMRequest) (*LLMResponse, error) {
	messages := a.convertMessages(req)
	options := a.buildCallOptions(req)
	response, err := a.model.GenerateContent(ctx, messages, options...)
	if err != nil {
		return nil, fmt.Errorf("langchain GenerateContent failed: %w", err)
	}
	return a.convertResponse(response)
}

func (a *LangChainAdapter) Close() error {
	return nil
}

// convertMessages converts our Message format to langchain MessageContent,
// carrying tool-call and tool-response parts so function-calling turns
// survive the round trip.
func (a *LangChainAdapter) convertMessages(req *LLMRequest) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.SystemPrompt))
	}
	for i := range req.Messages {
		messages = append(messages, a.convertMessage(&req.Messages[i]))
	}
	return messages
}

func (a *LangChainAdapter) convertMessage(msg *Message) llms.MessageContent {
	parts := make([]llms.ContentPart, 0, 1+len(msg.ToolCalls)+len(msg.ToolResults))
	if msg.Content != "" {
		parts = append(parts, llms.TextContent{Text: msg.Content})
	}
	for _, call := range msg.ToolCalls {
		parts = append(parts, llms.ToolCall{
			ID:   call.ID,
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      call.Name,
				Arguments: string(call.Arguments),
			},
		})
	}
	for _, result := range msg.ToolResults {
		parts = append(parts, llms.ToolCallResponse{
			ToolCallID: result.ID,
			Name:       result.Name,
			Content:    result.Content,
		})
	}
	return llms.MessageContent{Role: a.mapMessageRole(msg.Role), Parts: parts}
}

func (a *LangChainAdapter) mapMessageRole(role string) llms.ChatMessageType {
	switch role {
	case RoleSystem:
		return llms.ChatMessageTypeSystem
	case RoleUser:
		return llms.ChatMessageTypeHuman
	case RoleAssistant:
		return llms.ChatMessageTypeAI
	case RoleTool:
		return llms.ChatMessageTypeTool
	default:
		return llms.ChatMessageTypeHuman
	}
}

func (a *LangChainAdapter) buildCallOptions(req *LLMRequest) []llms.CallOption {
	var options []llms.CallOption
	if req.Options.Temperature > 0 {
		options = append(options, llms.WithTemperature(req.Options.Temperature))
	}
	if req.Options.MaxTokens > 0 {
		options = append(options, llms.WithMaxTokens(int(req.Options.MaxTokens)))
	}
	if len(req.Tools) > 0 {
		options = append(options, llms.WithTools(a.convertTools(req.Tools)))
	}
	return options
}

func (a *LangChainAdapter) convertTools(tools []ToolDefinition) []llms.Tool {
	llmTools := make([]llms.Tool, 0, len(tools))
	for _, t := range tools {
		llmTools = append(llmTools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return llmTools
}

func (a *LangChainAdapter) convertResponse(resp *llms.ContentResponse) (*LLMResponse, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from LLM")
	}
	choice := resp.Choices[0]
	response := &LLMResponse{Content: choice.Content}
	if len(choice.ToolCalls) > 0 {
		response.ToolCalls = make([]ToolCall, 0, len(choice.ToolCalls))
		for _, tc := range choice.ToolCalls {
			if tc.FunctionCall == nil {
				continue
			}
			response.ToolCalls = append(response.ToolCalls, ToolCall{
				ID:        tc.ID,
				Name:      tc.FunctionCall.Name,
				Arguments: []byte(tc.FunctionCall.Arguments),
			})
		}
	}
	return response, nil
}
