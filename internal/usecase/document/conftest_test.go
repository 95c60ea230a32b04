package document

import (
	"context"
	"testing"

	"github.com/chatwith/wikichat/internal/domain"
)

type mockRepo struct {
	upsertFn func(ctx context.Context, doc *domain.Document) (bool, error)
	getFn    func(ctx context.Context, id string) (domain.Document, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockRepo) Upsert(ctx context.Context, doc *domain.Document) (bool, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, doc)
	}
	return true, nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domain.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Document{}, domain.ErrDocumentNotFound
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
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

func newTestService(t *testing.T) (*Service, *mockRepo, *mockEmbedder) {
	t.Helper()
	repo := &mockRepo{}
	emb := &mockEmbedder{}
	return New(repo, emb), repo, emb
}
