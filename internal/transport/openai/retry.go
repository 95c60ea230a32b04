package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// RetryConfig holds configuration for exponential backoff retry.
type RetryConfig struct {
	MaxRetries  int           // maximum retry attempts
	BaseDelay   time.Duration // initial delay before first retry
	MaxDelay    time.Duration // delay cap
	JitterRatio float64       // jitter as fraction of delay, 0.0-1.0
}

// DefaultRetryConfig returns defaults: 3 retries, 500ms base delay,
// 10s max delay, 25% jitter.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:  3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		JitterRatio: 0.25,
	}
}

// isRetryableError reports whether err is a transient API error that
// warrants a retry: HTTP 429 or 5xx. Other client errors (4xx) are
// returned immediately.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 ||
			(apiErr.HTTPStatusCode >= 500 && apiErr.HTTPStatusCode < 600)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == 429 ||
			(reqErr.HTTPStatusCode >= 500 && reqErr.HTTPStatusCode < 600)
	}

	return false
}

// withRetry executes fn with exponential backoff. Only transient errors
// (429 / 5xx) are retried.
func withRetry[T any](ctx context.Context, cfg RetryConfig, operation string, fn func() (T, error)) (T, error) {
	var zero T

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		if !isRetryableError(err) {
			return zero, err
		}

		if attempt == cfg.MaxRetries {
			return zero, fmt.Errorf("%s failed after %d retries: %w", operation, cfg.MaxRetries, err)
		}

		// base * 2^attempt, add jitter, then cap
		delay := time.Duration(float64(cfg.BaseDelay) * math.Pow(2, float64(attempt)))
		if cfg.JitterRatio > 0 {
			delay += time.Duration(rand.Float64() * cfg.JitterRatio * float64(delay))
		}
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("%s: context cancelled during retry: %w", operation, ctx.Err())
		case <-time.After(delay):
		}
	}

	return zero, fmt.Errorf("%s: retry loop exited unexpectedly", operation)
}
