package tool

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/francis-ohara/model-garden-agent/engine/core"
)

// Statuses carried by tool envelopes.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

// Envelope is the uniform payload every tool returns to the model. Success
// and warning results carry Content; error results carry ErrorMessage.
type Envelope struct {
	Status       string `json:"status"`
	Content      string `json:"content,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Success builds a success envelope.
func Success(content string) Envelope {
	return Envelope{Status: StatusSuccess, Content: content}
}

// Successf builds a success envelope from a format string.
func Successf(format string, args ...any) Envelope {
	return Success(fmt.Sprintf(format, args...))
}

// Warning builds a warning envelope. Warnings signal an empty but valid
// result, such as a model with no published deployment options.
func Warning(content string) Envelope {
	return Envelope{Status: StatusWarning, Content: content}
}

// Error builds an error envelope.
func Error(message string) Envelope {
	return Envelope{Status: StatusError, ErrorMessage: message}
}

// Errorf builds an error envelope from a format string.
func Errorf(format string, args ...any) Envelope {
	return Error(fmt.Sprintf(format, args...))
}

// JSON serializes the envelope. Envelopes only hold strings, so marshaling
// cannot realistically fail; the fallback keeps the contract anyway.
func (e Envelope) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return `{"status":"error","error_message":"failed to serialize tool result"}`
	}
	return string(data)
}

// errDetail extracts the human-readable part of an error for embedding in
// envelope messages: the wrapped message for coded errors, the full text
// otherwise.
func errDetail(err error) string {
	if err == nil {
		return ""
	}
	var coreErr *core.Error
	if errors.As(err, &coreErr) && coreErr.Message != "" {
		return coreErr.Message
	}
	return err.Error()
}
