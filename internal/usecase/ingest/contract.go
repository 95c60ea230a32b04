package ingest

import (
	"context"

	"github.com/chatwith/wikichat/internal/domain"
	"github.com/chatwith/wikichat/internal/wiki"
)

// Scraper fetches article text from Wikipedia.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*wiki.Page, error)
}

// Repository stores documents and answers existence checks.
type Repository interface {
	Upsert(ctx context.Context, doc *domain.Document) (created bool, err error)
	Exists(ctx context.Context, id string) (bool, error)
}

// Embedder vectorizes chunk text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
