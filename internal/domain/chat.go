package domain

import "context"

// ChatRequest is a single-turn prompt sent to the chat completion provider.
type ChatRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// ChatCompleter sends a prompt to a chat completion provider and returns
// the model's text reply.
type ChatCompleter interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// SearchHit is a single semantic search result.
type SearchHit struct {
	ID       string
	Content  string
	Metadata map[string]any
	Distance float64
}

// ChatAnswer is the outcome of the search pipeline: retrieved hits plus
// the LLM verdicts built on top of them.
type ChatAnswer struct {
	Hits       []SearchHit
	Summary    string
	IsRelevant bool
	Message    string
}
