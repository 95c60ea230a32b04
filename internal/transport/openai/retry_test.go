package openai

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"api 429", &openai.APIError{HTTPStatusCode: 429}, true},
		{"api 500", &openai.APIError{HTTPStatusCode: 500}, true},
		{"api 503", &openai.APIError{HTTPStatusCode: 503}, true},
		{"api 400", &openai.APIError{HTTPStatusCode: 400}, false},
		{"api 401", &openai.APIError{HTTPStatusCode: 401}, false},
		{"request 502", &openai.RequestError{HTTPStatusCode: 502}, true},
		{"request 404", &openai.RequestError{HTTPStatusCode: 404}, false},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isRetryableError(tc.err); got != tc.want {
				t.Errorf("isRetryableError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestWithRetry_NonRetryableReturnsImmediately(t *testing.T) {
	calls := 0
	_, err := withRetry(context.Background(), DefaultRetryConfig(), "op", func() (int, error) {
		calls++
		return 0, &openai.APIError{HTTPStatusCode: 400}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestWithRetry_ExhaustsRetries(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 2, BaseDelay: 1, MaxDelay: 1}
	calls := 0
	_, err := withRetry(context.Background(), cfg, "op", func() (int, error) {
		calls++
		return 0, &openai.APIError{HTTPStatusCode: 500}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls (1 + 2 retries), got %d", calls)
	}
}

func TestWithRetry_SucceedsAfterTransientError(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 3, BaseDelay: 1, MaxDelay: 1}
	calls := 0
	got, err := withRetry(context.Background(), cfg, "op", func() (string, error) {
		calls++
		if calls < 2 {
			return "", &openai.APIError{HTTPStatusCode: 429}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("expected ok, got %q", got)
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := RetryConfig{MaxRetries: 3, BaseDelay: 1000, MaxDelay: 1000}
	_, err := withRetry(ctx, cfg, "op", func() (int, error) {
		return 0, &openai.APIError{HTTPStatusCode: 500}
	})
	if err == nil {
		t.Fatal("expected context error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
