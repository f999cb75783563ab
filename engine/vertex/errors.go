package vertex

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/francis-ohara/model-garden-agent/engine/core"
)

// Error codes attached to *core.Error values returned by this package.
// They mirror the canonical gRPC status classes the Vertex AI services
// return, so callers can branch on failure class without touching the
// transport error.
const (
	ErrCodeInvalidArgument   = "INVALID_ARGUMENT"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnavailable       = "UNAVAILABLE"
	ErrCodePermissionDenied  = "PERMISSION_DENIED"
	ErrCodeResourceExhausted = "RESOURCE_EXHAUSTED"
	ErrCodeUnauthenticated   = "UNAUTHENTICATED"
	ErrCodeAPIError          = "API_ERROR"
	ErrCodeMissingConfig     = "MISSING_CONFIG"
)

// classify wraps a transport error into a *core.Error keyed by the gRPC
// status code. Context cancellation is passed through untouched so callers
// can keep matching it with errors.Is.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		return err
	}
	code := ErrCodeAPIError
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.InvalidArgument:
			code = ErrCodeInvalidArgument
		case codes.NotFound:
			code = ErrCodeNotFound
		case codes.Unavailable:
			code = ErrCodeUnavailable
		case codes.PermissionDenied:
			code = ErrCodePermissionDenied
		case codes.ResourceExhausted:
			code = ErrCodeResourceExhausted
		case codes.Unauthenticated:
			code = ErrCodeUnauthenticated
		}
	}
	return core.NewError(err, code, map[string]any{"operation": op})
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	return core.CodeOf(err) == ErrCodeNotFound
}

// IsInvalidArgument reports whether err carries the INVALID_ARGUMENT code.
func IsInvalidArgument(err error) bool {
	return core.CodeOf(err) == ErrCodeInvalidArgument
}

// IsUnavailable reports whether err carries the UNAVAILABLE code.
func IsUnavailable(err error) bool {
	return core.CodeOf(err) == ErrCodeUnavailable
}
