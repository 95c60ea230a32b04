// Package document implements document CRUD with automatic vectorization.
package document

import (
	"context"
	"fmt"

	"github.com/chatwith/wikichat/internal/domain"
)

// Service handles document CRUD with automatic vectorization.
type Service struct {
	repo     Repository
	embedder Embedder
}

// New creates a document service.
func New(repo Repository, embedder Embedder) *Service {
	return &Service{repo: repo, embedder: embedder}
}

// Add validates, vectorizes and stores a document.
// Returns true if the document was created, false if updated.
func (s *Service) Add(ctx context.Context, id, content string, metadata map[string]any) (bool, error) {
	doc, err := domain.NewDocument(id, content, metadata)
	if err != nil {
		return false, err
	}

	result, err := s.embedder.Embed(ctx, doc.Content())
	if err != nil {
		return false, fmt.Errorf("vectorize document: %w", err)
	}
	doc.SetVector(result.Embedding)

	created, err := s.repo.Upsert(ctx, &doc)
	if err != nil {
		return false, fmt.Errorf("upsert document: %w", err)
	}

	return created, nil
}

// Get retrieves a document by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Document, error) {
	if id == "" {
		return domain.Document{}, fmt.Errorf("document ID is required: %w", domain.ErrInvalidDocument)
	}

	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Delete removes a document by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("document ID is required: %w", domain.ErrInvalidDocument)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
