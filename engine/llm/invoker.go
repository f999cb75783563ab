package llm

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	llmadapter "github.com/francis-ohara/model-garden-agent/engine/llm/adapter"
	"github.com/francis-ohara/model-garden-agent/pkg/logger"
)

const defaultRetryAttempts = 2

// invoker calls the LLM with a per-call timeout and exponential backoff on
// transient failures.
type invoker struct {
	timeout       time.Duration
	retryAttempts int
	backoffBase   time.Duration
	backoffMax    time.Duration
	jitter        bool
}

func (i *invoker) Invoke(
	ctx context.Context,
	client llmadapter.LLMClient,
	req *llmadapter.LLMRequest,
	agentID string,
) (*llmadapter.LLMResponse, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	attempts := i.retryAttempts
	if attempts < 0 || attempts > 100 {
		attempts = defaultRetryAttempts
	}
	backoffBase := i.backoffBase
	if backoffBase <= 0 {
		backoffBase = 200 * time.Millisecond
	}
	exponential := retry.NewExponential(backoffBase)
	if i.backoffMax > 0 {
		exponential = retry.WithMaxDuration(i.backoffMax, exponential)
	}
	var backoff retry.Backoff
	// #nosec G115 -- attempts sanitized above
	maxRetries := uint64(attempts)
	if i.jitter {
		backoff = retry.WithMaxRetries(maxRetries, retry.WithJitter(50*time.Millisecond, exponential))
	} else {
		backoff = retry.WithMaxRetries(maxRetries, exponential)
	}

	log := logger.FromContext(ctx)
	var response *llmadapter.LLMResponse
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var callErr error
		response, callErr = client.GenerateContent(ctx, req)
		if callErr != nil {
			if isRetryableError(callErr) {
				log.Debug("retrying LLM call", "agent", agentID, "error", callErr)
				return retry.RetryableError(callErr)
			}
			return callErr
		}
		return nil
	})
	if err != nil {
		return nil, NewLLMError(err, ErrCodeLLMGeneration, map[string]any{"agent": agentID})
	}
	return response, nil
}
