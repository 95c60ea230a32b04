package document

import (
	"context"
	"errors"
	"testing"

	"github.com/chatwith/wikichat/internal/domain"
)

// --- Add ---

func TestAdd_Success(t *testing.T) {
	svc, repo, emb := newTestService(t)
	ctx := context.Background()

	emb.embedFn = func(_ context.Context, text string) (domain.EmbeddingResult, error) {
		if text != "some content" {
			t.Errorf("unexpected text: %q", text)
		}
		return domain.EmbeddingResult{Embedding: []float32{0.5, 0.6}, TotalTokens: 3}, nil
	}
	repo.upsertFn = func(_ context.Context, doc *domain.Document) (bool, error) {
		if doc.ID() != "doc-1" {
			t.Errorf("unexpected id: %s", doc.ID())
		}
		if len(doc.Vector()) != 2 {
			t.Errorf("expected vector set before upsert, got %v", doc.Vector())
		}
		return true, nil
	}

	created, err := svc.Add(ctx, "doc-1", "some content", map[string]any{"source": "api"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true")
	}
}

func TestAdd_InvalidDocument(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		content string
	}{
		{"empty id", "", "content"},
		{"empty content", "doc-1", ""},
		{"bad id chars", "doc/1", "content"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tc.id, tc.content, nil)
			if !errors.Is(err, domain.ErrInvalidDocument) {
				t.Fatalf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestAdd_EmbedderError(t *testing.T) {
	svc, _, emb := newTestService(t)
	ctx := context.Background()

	emb.embedFn = func(_ context.Context, _ string) (domain.EmbeddingResult, error) {
		return domain.EmbeddingResult{}, domain.ErrEmbeddingProviderError
	}

	_, err := svc.Add(ctx, "doc-1", "content", nil)
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestAdd_RepoError(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.upsertFn = func(_ context.Context, _ *domain.Document) (bool, error) {
		return false, errors.New("storage down")
	}

	_, err := svc.Add(ctx, "doc-1", "content", nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

// --- Get ---

func TestGet_Success(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.getFn = func(_ context.Context, id string) (domain.Document, error) {
		return domain.ReconstructDocument(id, "content", map[string]any{"k": "v"}, nil), nil
	}

	doc, err := svc.Get(ctx, "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Content() != "content" {
		t.Errorf("unexpected content: %q", doc.Content())
	}
}

func TestGet_EmptyID(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "")
	if !errors.Is(err, domain.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

// --- Delete ---

func TestDelete_Success(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	var deletedID string
	repo.deleteFn = func(_ context.Context, id string) error {
		deletedID = id
		return nil
	}

	if err := svc.Delete(ctx, "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != "doc-1" {
		t.Errorf("unexpected deleted id: %s", deletedID)
	}
}

func TestDelete_EmptyID(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Delete(context.Background(), "")
	if !errors.Is(err, domain.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.deleteFn = func(_ context.Context, _ string) error {
		return domain.ErrDocumentNotFound
	}

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}
