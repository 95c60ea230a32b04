package chi

import (
	"context"

	"github.com/chatwith/wikichat/internal/domain"
)

// mockDocRepo implements the document usecase Repository contract.
type mockDocRepo struct {
	upsertFn func(ctx context.Context, doc *domain.Document) (bool, error)
	getFn    func(ctx context.Context, id string) (domain.Document, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockDocRepo) Upsert(ctx context.Context, doc *domain.Document) (bool, error) {
	return m.upsertFn(ctx, doc)
}

func (m *mockDocRepo) Get(ctx context.Context, id string) (domain.Document, error) {
	return m.getFn(ctx, id)
}

func (m *mockDocRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// mockSearchRepo implements the search usecase SearchRepository contract.
type mockSearchRepo struct {
	searchFn func(ctx context.Context, vector []float32, topK int) ([]domain.SearchHit, error)
}

func (m *mockSearchRepo) SearchKNN(ctx context.Context, vector []float32, topK int) ([]domain.SearchHit, error) {
	return m.searchFn(ctx, vector, topK)
}

// mockEmbedder implements the shared Embedder contract.
type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	return m.embedFn(ctx, text)
}

// mockChat implements the search usecase ChatService contract.
type mockChat struct {
	relevant  bool
	summarize func(ctx context.Context, query string, documents []string) string
}

func (m *mockChat) CheckRelevance(ctx context.Context, query string) bool {
	return m.relevant
}

func (m *mockChat) Summarize(ctx context.Context, query string, documents []string) string {
	if m.summarize == nil {
		return ""
	}
	return m.summarize(ctx, query, documents)
}

// mockCounter implements the collection usecase Counter contract.
type mockCounter struct {
	countFn func(ctx context.Context, indexName string) (int, error)
}

func (m *mockCounter) Count(ctx context.Context, indexName string) (int, error) {
	return m.countFn(ctx, indexName)
}

// mockPinger implements the health usecase DBPinger contract.
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error { return m.err }

// mockHealthChecker implements the health usecase EmbeddingChecker contract.
type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) HealthCheck(ctx context.Context) error { return m.err }
