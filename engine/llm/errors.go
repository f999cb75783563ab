package llm

import (
	"context"
	"errors"
	"net"
	"regexp"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/francis-ohara/model-garden-agent/engine/core"
)

// Error codes for conversation-loop operations.
const (
	ErrCodeLLMGeneration       = "LLM_GENERATION_ERROR"
	ErrCodeInvalidConversation = "INVALID_CONVERSATION"
	ErrCodeMaxIterations       = "MAX_ITERATIONS_EXCEEDED"
	ErrCodeUnknownTool         = "UNKNOWN_TOOL"
)

// transientPattern catches provider error strings that HTTP-backed models
// surface without a typed cause: throttling, capacity, and gateway failures.
var transientPattern = regexp.MustCompile(
	`(?i)(timeout|temporarily|try again|rate limit|too many requests|quota|overloaded|\b(429|500|502|503|504)\b)`)

// NewLLMError wraps a conversation-loop failure with a stable code.
func NewLLMError(err error, code string, details map[string]any) error {
	return core.NewError(err, code, details)
}

// isRetryableError reports whether an LLM call failure is worth retrying.
// Cancellation is terminal; deadline, network, and capacity failures are
// transient. The Vertex backend speaks gRPC, so status codes are checked
// before falling back to string patterns.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if st, ok := status.FromError(err); ok && st.Code() != codes.OK && st.Code() != codes.Unknown {
		switch st.Code() {
		case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded, codes.Aborted, codes.Internal:
			return true
		default:
			return false
		}
	}
	return transientPattern.MatchString(err.Error())
}
