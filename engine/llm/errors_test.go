package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsRetryableError(t *testing.T) {
	t.Run("Should not retry nil or cancellation", func(t *testing.T) {
		assert.False(t, isRetryableError(nil))
		assert.False(t, isRetryableError(context.Canceled))
		assert.False(t, isRetryableError(fmt.Errorf("wrapped: %w", context.Canceled)))
	})
	t.Run("Should retry deadline exceeded", func(t *testing.T) {
		assert.True(t, isRetryableError(context.DeadlineExceeded))
	})
	t.Run("Should retry transient grpc codes", func(t *testing.T) {
		assert.True(t, isRetryableError(status.Error(codes.Unavailable, "overloaded")))
		assert.True(t, isRetryableError(status.Error(codes.ResourceExhausted, "quota")))
		assert.True(t, isRetryableError(status.Error(codes.Internal, "hiccup")))
	})
	t.Run("Should not retry terminal grpc codes", func(t *testing.T) {
		assert.False(t, isRetryableError(status.Error(codes.InvalidArgument, "bad filter")))
		assert.False(t, isRetryableError(status.Error(codes.NotFound, "no such model")))
		assert.False(t, isRetryableError(status.Error(codes.PermissionDenied, "denied")))
	})
	t.Run("Should retry throttling and gateway patterns", func(t *testing.T) {
		assert.True(t, isRetryableError(errors.New("googleapi: Error 429: rate limit exceeded")))
		assert.True(t, isRetryableError(errors.New("API returned 503 Service Unavailable")))
		assert.True(t, isRetryableError(errors.New("request timeout while waiting for response")))
	})
	t.Run("Should not retry plain failures", func(t *testing.T) {
		assert.False(t, isRetryableError(errors.New("invalid request payload")))
	})
}
