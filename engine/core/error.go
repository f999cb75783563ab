package core

import (
	"errors"
	"fmt"
)

// Error wraps an underlying error with a stable machine-readable code and
// optional structured details. Callers match on Code via errors.As instead
// of parsing messages.
type Error struct {
	Err     error          `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewError creates an Error wrapping err with the given code and details.
func NewError(err error, code string, details map[string]any) *Error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Err:     err,
		Code:    code,
		Message: msg,
		Details: details,
	}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CodeOf returns the code of the nearest *Error in err's chain, or "" when
// none is present.
func CodeOf(err error) string {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Code
	}
	return ""
}
