package llm

import (
	"time"

	"github.com/francis-ohara/model-garden-agent/engine/core"
	llmadapter "github.com/francis-ohara/model-garden-agent/engine/llm/adapter"
)

// Session holds the message history of one conversation. A session is
// single-threaded: callers must not share it across concurrent Send calls.
type Session struct {
	ID        core.ID
	AgentID   string
	Messages  []llmadapter.Message
	CreatedAt time.Time
}

func NewSession(agentID string) *Session {
	return &Session{
		ID:        core.MustNewID(),
		AgentID:   agentID,
		CreatedAt: time.Now(),
	}
}

func (s *Session) append(msg llmadapter.Message) {
	s.Messages = append(s.Messages, msg)
}
