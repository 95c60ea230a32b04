package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/chatwith/wikichat/internal/domain"
	"github.com/chatwith/wikichat/internal/wiki"
)

type mockScraper struct {
	page *wiki.Page
	err  error
}

func (m *mockScraper) Scrape(_ context.Context, _ string) (*wiki.Page, error) {
	return m.page, m.err
}

type mockRepo struct {
	existing map[string]bool
	stored   map[string]*domain.Document
	upsertFn func(ctx context.Context, doc *domain.Document) (bool, error)
}

func (m *mockRepo) Upsert(ctx context.Context, doc *domain.Document) (bool, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, doc)
	}
	if m.stored == nil {
		m.stored = make(map[string]*domain.Document)
	}
	m.stored[doc.ID()] = doc
	return true, nil
}

func (m *mockRepo) Exists(_ context.Context, id string) (bool, error) {
	return m.existing[id], nil
}

type mockEmbedder struct {
	err   error
	calls int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1}}, nil
}

func testConfig() Config {
	return Config{
		WikipediaURL: "https://en.wikipedia.org/wiki/Sai_Sai_Kham_Leng",
		DocumentID:   "sai_sai_kham_leng_wiki",
		ChunkSize:    50,
	}
}

func testPage() *wiki.Page {
	return &wiki.Page{
		Title: "Sai Sai Kham Leng",
		Content: "First paragraph about the singer.\n\n" +
			"Second paragraph about his albums.\n\n" +
			"Third paragraph about his movies.",
		Metadata: map[string]any{
			"source": "wikipedia",
			"title":  "Sai Sai Kham Leng",
		},
	}
}

func TestRun_IngestsChunksAndFullDocument(t *testing.T) {
	repo := &mockRepo{}
	emb := &mockEmbedder{}
	svc := New(&mockScraper{page: testPage()}, repo, emb, testConfig(), zap.NewNop())

	stored, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	full, ok := repo.stored["sai_sai_kham_leng_wiki"]
	if !ok {
		t.Fatal("expected full document stored")
	}
	if !strings.Contains(full.Content(), "First paragraph") ||
		!strings.Contains(full.Content(), "Third paragraph") {
		t.Errorf("expected full content, got %q", full.Content())
	}

	chunk0, ok := repo.stored["sai_sai_kham_leng_wiki_chunk_0"]
	if !ok {
		t.Fatal("expected chunk 0 stored")
	}
	if chunk0.Metadata()["chunk_index"] != 0 {
		t.Errorf("expected chunk_index=0, got %v", chunk0.Metadata()["chunk_index"])
	}
	if chunk0.Metadata()["chunk_id"] != "sai_sai_kham_leng_wiki_chunk_0" {
		t.Errorf("unexpected chunk_id: %v", chunk0.Metadata()["chunk_id"])
	}
	if chunk0.Metadata()["source"] != "wikipedia" {
		t.Errorf("expected page metadata inherited, got %v", chunk0.Metadata())
	}
	if len(chunk0.Vector()) == 0 {
		t.Error("expected chunk to be vectorized")
	}

	// full document metadata must not carry chunk fields
	if _, ok := full.Metadata()["chunk_index"]; ok {
		t.Error("full document should not have chunk_index")
	}

	if stored != len(repo.stored) {
		t.Errorf("expected stored=%d, got %d", len(repo.stored), stored)
	}
	if stored < 2 {
		t.Errorf("expected at least one chunk plus full doc, got %d", stored)
	}
}

func TestRun_SkipsWhenAlreadyIngested(t *testing.T) {
	repo := &mockRepo{existing: map[string]bool{"sai_sai_kham_leng_wiki": true}}
	emb := &mockEmbedder{}
	svc := New(&mockScraper{page: testPage()}, repo, emb, testConfig(), zap.NewNop())

	stored, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != 0 {
		t.Errorf("expected 0 stored, got %d", stored)
	}
	if emb.calls != 0 {
		t.Errorf("expected no embedding calls, got %d", emb.calls)
	}
}

func TestRun_ScrapeError(t *testing.T) {
	repo := &mockRepo{}
	svc := New(&mockScraper{err: errors.New("network down")}, repo, &mockEmbedder{}, testConfig(), zap.NewNop())

	_, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRun_EmbedError(t *testing.T) {
	repo := &mockRepo{}
	emb := &mockEmbedder{err: domain.ErrEmbeddingProviderError}
	svc := New(&mockScraper{page: testPage()}, repo, emb, testConfig(), zap.NewNop())

	_, err := svc.Run(context.Background())
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestChunkContent(t *testing.T) {
	content := strings.Repeat("a", 40) + "\n\n" + strings.Repeat("b", 40) + "\n\n" + strings.Repeat("c", 40)

	chunks := chunkContent(content, 50)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	for i, c := range chunks {
		if len(c) != 40 {
			t.Errorf("chunk %d: expected 40 chars, got %d", i, len(c))
		}
	}
}

func TestChunkContent_SmallContentSingleChunk(t *testing.T) {
	chunks := chunkContent("one\n\ntwo", 1000)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "one\n\ntwo" {
		t.Errorf("unexpected chunk: %q", chunks[0])
	}
}

func TestChunkContent_Empty(t *testing.T) {
	if chunks := chunkContent("", 100); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty content, got %v", chunks)
	}
}
