package search

import (
	"context"
	"testing"

	"github.com/chatwith/wikichat/internal/domain"
)

type mockSearchRepo struct {
	searchFn func(ctx context.Context, vector []float32, topK int) ([]domain.SearchHit, error)
}

func (m *mockSearchRepo) SearchKNN(ctx context.Context, vector []float32, topK int) ([]domain.SearchHit, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, vector, topK)
	}
	return nil, nil
}

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

type mockChat struct {
	relevant    bool
	summary     string
	summarizeFn func(ctx context.Context, query string, documents []string) string
}

func (m *mockChat) CheckRelevance(_ context.Context, _ string) bool {
	return m.relevant
}

func (m *mockChat) Summarize(ctx context.Context, query string, documents []string) string {
	if m.summarizeFn != nil {
		return m.summarizeFn(ctx, query, documents)
	}
	return m.summary
}

func newTestService(t *testing.T) (*Service, *mockSearchRepo, *mockEmbedder, *mockChat) {
	t.Helper()
	repo := &mockSearchRepo{}
	emb := &mockEmbedder{}
	mc := &mockChat{relevant: true, summary: "a summary"}
	svc := New(repo, emb, mc, "Sai Sai Kham Leng")
	return svc, repo, emb, mc
}
