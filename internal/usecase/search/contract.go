package search

import (
	"context"

	"github.com/chatwith/wikichat/internal/domain"
)

// SearchRepository runs KNN queries against the vector index.
type SearchRepository interface {
	SearchKNN(ctx context.Context, vector []float32, topK int) ([]domain.SearchHit, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// ChatService gates queries by relevance and summarizes retrieved content.
type ChatService interface {
	CheckRelevance(ctx context.Context, query string) bool
	Summarize(ctx context.Context, query string, documents []string) string
}
