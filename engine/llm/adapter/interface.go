package llmadapter

import (
	"context"
	"encoding/json"
	"fmt"
)

// Role constants for conversation messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// LLMRequest represents a request to the LLM, independent of provider.
type LLMRequest struct {
	SystemPrompt string
	Messages     []Message
	Tools        []ToolDefinition
	Options      CallOptions
}

// Message represents a conversation message.
type Message struct {
	Role    string // "system", "user", "assistant", "tool"
	Content string
	// ToolCalls carries function calls emitted by the assistant.
	// Constraint: only messages with Role == "assistant" may contain ToolCalls.
	ToolCalls []ToolCall
	// ToolResults carries tool responses provided by the runtime.
	// Constraint: only messages with Role == "tool" may contain ToolResults.
	ToolResults []ToolResult
}

// ToolDefinition describes a tool the LLM may call.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON Schema
}

// ToolCall represents a tool invocation request from the LLM.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// ToolResult represents a tool's response payload for the LLM.
type ToolResult struct {
	ID      string
	Name    string
	Content string
}

// CallOptions represents per-call generation options.
type CallOptions struct {
	Temperature float64
	MaxTokens   int32
}

// LLMResponse represents the response from the LLM.
type LLMResponse struct {
	Content   string
	ToolCalls []ToolCall
}

// LLMClient is the main interface for LLM interactions.
type LLMClient interface {
	// GenerateContent sends a request to the LLM and returns a response.
	GenerateContent(ctx context.Context, req *LLMRequest) (*LLMResponse, error)
	// Close cleans up any resources held by the client.
	Close() error
}

// ValidateConversation asserts role-specific constraints for messages:
// - Only assistant messages may contain ToolCalls
// - Only tool messages may contain ToolResults
// This helps catch wiring mistakes early.
func ValidateConversation(messages []Message) error {
	for i, m := range messages {
		if len(m.ToolCalls) > 0 && m.Role != RoleAssistant {
			return fmt.Errorf("message[%d] role %q cannot contain ToolCalls", i, m.Role)
		}
		if len(m.ToolResults) > 0 && m.Role != RoleTool {
			return fmt.Errorf("message[%d] role %q cannot contain ToolResults", i, m.Role)
		}
	}
	return nil
}
