// Package ingest seeds the vector store from a Wikipedia article on
// startup. Ingestion is idempotent: if the full document already exists
// the run is skipped.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/chatwith/wikichat/internal/domain"
)

const defaultChunkSize = 1000

// Config holds ingestion parameters.
type Config struct {
	WikipediaURL string
	DocumentID   string
	ChunkSize    int // characters per chunk
}

// Service ingests a Wikipedia article as chunked documents.
type Service struct {
	scraper  Scraper
	repo     Repository
	embedder Embedder
	cfg      Config
	logger   *zap.Logger
}

// New creates an ingest service.
func New(scraper Scraper, repo Repository, embedder Embedder, cfg Config, logger *zap.Logger) *Service {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	return &Service{
		scraper:  scraper,
		repo:     repo,
		embedder: embedder,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run scrapes, chunks and stores the configured article. Chunks are stored
// as <document_id>_chunk_<i> plus one document holding the full text.
// Returns the number of stored documents (0 when content already exists).
func (s *Service) Run(ctx context.Context) (int, error) {
	exists, err := s.repo.Exists(ctx, s.cfg.DocumentID)
	if err != nil {
		return 0, fmt.Errorf("check existing content: %w", err)
	}
	if exists {
		s.logger.Info("Wikipedia content already ingested, skipping",
			zap.String("document_id", s.cfg.DocumentID))
		return 0, nil
	}

	s.logger.Info("Ingesting Wikipedia content", zap.String("url", s.cfg.WikipediaURL))

	page, err := s.scraper.Scrape(ctx, s.cfg.WikipediaURL)
	if err != nil {
		return 0, fmt.Errorf("scrape article: %w", err)
	}

	chunks := chunkContent(page.Content, s.cfg.ChunkSize)

	stored := 0
	for i, chunk := range chunks {
		chunkID := fmt.Sprintf("%s_chunk_%d", s.cfg.DocumentID, i)

		meta := cloneMeta(page.Metadata)
		meta["chunk_index"] = i
		meta["total_chunks"] = len(chunks)
		meta["chunk_id"] = chunkID

		if err := s.store(ctx, chunkID, chunk, meta); err != nil {
			return stored, fmt.Errorf("store chunk %d: %w", i, err)
		}
		stored++
	}

	// The full article is stored alongside the chunks so GET by the
	// configured document ID returns complete content.
	if err := s.store(ctx, s.cfg.DocumentID, page.Content, cloneMeta(page.Metadata)); err != nil {
		return stored, fmt.Errorf("store full document: %w", err)
	}
	stored++

	s.logger.Info("Wikipedia ingestion complete",
		zap.Int("chunks", len(chunks)),
		zap.String("title", page.Title))

	return stored, nil
}

func (s *Service) store(ctx context.Context, id, content string, meta map[string]any) error {
	doc, err := domain.NewDocument(id, content, meta)
	if err != nil {
		return err
	}

	result, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return fmt.Errorf("vectorize: %w", err)
	}
	doc.SetVector(result.Embedding)

	if _, err := s.repo.Upsert(ctx, &doc); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// chunkContent splits article text into chunks of roughly chunkSize
// characters, breaking on paragraph boundaries.
func chunkContent(content string, chunkSize int) []string {
	paragraphs := strings.Split(content, "\n\n")

	var chunks []string
	var current strings.Builder

	for _, p := range paragraphs {
		if current.Len()+len(p) > chunkSize && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
			current.WriteString(p)
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}

func cloneMeta(m map[string]any) map[string]any {
	c := make(map[string]any, len(m)+3)
	for k, v := range m {
		c[k] = v
	}
	return c
}
