package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/francis-ohara/model-garden-agent/engine/agent"
	llmadapter "github.com/francis-ohara/model-garden-agent/engine/llm/adapter"
	"github.com/francis-ohara/model-garden-agent/engine/tool"
	"github.com/francis-ohara/model-garden-agent/pkg/config"
	"github.com/francis-ohara/model-garden-agent/pkg/logger"
)

// Service runs conversations with the assistant: it sends the session
// history to the model, executes the tool calls it emits, and loops until
// the model produces a plain answer.
type Service struct {
	agent    *agent.Config
	registry *tool.Registry
	client   llmadapter.LLMClient
	invoker  *invoker
	executor *toolExecutor

	temperature   float64
	maxIterations int
}

// Option configures the service.
type Option func(*Service)

// WithClient overrides the LLM client, skipping the langchaingo factory.
func WithClient(client llmadapter.LLMClient) Option {
	return func(s *Service) {
		s.client = client
	}
}

// NewService wires the assistant to its model and tool registry. Every tool
// named by the agent must already be registered.
func NewService(
	ctx context.Context,
	cfg *config.Config,
	agentCfg *agent.Config,
	registry *tool.Registry,
	opts ...Option,
) (*Service, error) {
	if agentCfg == nil {
		return nil, errors.New("agent config is required")
	}
	if err := agentCfg.Validate(ctx); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, errors.New("tool registry is required")
	}
	for _, name := range agentCfg.Tools {
		if _, found := registry.Find(ctx, name); !found {
			return nil, NewLLMError(
				fmt.Errorf("agent references unknown tool %q", name),
				ErrCodeUnknownTool,
				map[string]any{"agent": agentCfg.ID, "tool": name},
			)
		}
	}
	s := &Service{
		agent:    agentCfg,
		registry: registry,
		invoker: &invoker{
			timeout:       cfg.Agent.Timeout,
			retryAttempts: cfg.Agent.RetryAttempts,
			backoffBase:   cfg.Agent.RetryBackoffBase,
			backoffMax:    cfg.Agent.RetryBackoffMax,
			jitter:        cfg.Agent.RetryJitter,
		},
		executor: &toolExecutor{
			registry:           registry,
			maxConcurrentTools: cfg.Agent.MaxConcurrentTools,
		},
		temperature:   cfg.Agent.Temperature,
		maxIterations: agentCfg.MaxIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		client, err := llmadapter.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s.client = client
	}
	return s, nil
}

// NewSession starts an empty conversation with the service's agent.
func (s *Service) NewSession() *Session {
	return NewSession(s.agent.ID)
}

// Send appends the user's message to the session and runs the conversation
// loop until the model answers without tool calls. The session keeps the
// full history including assistant tool calls and tool results.
func (s *Service) Send(ctx context.Context, session *Session, userText string) (string, error) {
	log := logger.FromContext(ctx)
	session.append(llmadapter.Message{Role: llmadapter.RoleUser, Content: userText})

	for iteration := 0; iteration < s.maxIterations; iteration++ {
		if err := llmadapter.ValidateConversation(session.Messages); err != nil {
			return "", NewLLMError(err, ErrCodeInvalidConversation, map[string]any{
				"agent":   s.agent.ID,
				"session": session.ID.String(),
			})
		}
		req := &llmadapter.LLMRequest{
			SystemPrompt: s.agent.Instructions,
			Messages:     session.Messages,
			Tools:        s.toolDefinitions(ctx),
			Options:      llmadapter.CallOptions{Temperature: s.temperature},
		}
		response, err := s.invoker.Invoke(ctx, s.client, req, s.agent.ID)
		if err != nil {
			return "", err
		}
		if len(response.ToolCalls) == 0 {
			session.append(llmadapter.Message{Role: llmadapter.RoleAssistant, Content: response.Content})
			return response.Content, nil
		}
		log.Debug("assistant requested tools",
			"agent", s.agent.ID,
			"session", session.ID.String(),
			"iteration", iteration,
			"tool_calls", len(response.ToolCalls),
		)
		session.append(llmadapter.Message{
			Role:      llmadapter.RoleAssistant,
			Content:   response.Content,
			ToolCalls: response.ToolCalls,
		})
		results, err := s.executor.Execute(ctx, response.ToolCalls)
		if err != nil {
			return "", err
		}
		session.append(llmadapter.Message{Role: llmadapter.RoleTool, ToolResults: results})
	}
	return "", NewLLMError(
		fmt.Errorf("agent did not produce a final answer within %d iterations", s.maxIterations),
		ErrCodeMaxIterations,
		map[string]any{"agent": s.agent.ID, "iterations": s.maxIterations},
	)
}

// toolDefinitions exposes the agent's registered tools to the model.
func (s *Service) toolDefinitions(ctx context.Context) []llmadapter.ToolDefinition {
	defs := make([]llmadapter.ToolDefinition, 0, len(s.agent.Tools))
	for _, name := range s.agent.Tools {
		t, found := s.registry.Find(ctx, name)
		if !found {
			continue
		}
		defs = append(defs, llmadapter.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.ParameterSchema(),
		})
	}
	return defs
}

func (s *Service) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
