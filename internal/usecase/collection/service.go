// Package collection reports stats about the configured document collection.
package collection

import (
	"context"
	"fmt"
)

// Counter counts documents in the vector index.
type Counter interface {
	Count(ctx context.Context, indexName string) (int, error)
}

// Info describes the collection.
type Info struct {
	Name          string
	DocumentCount int
}

// Service reports collection info.
type Service struct {
	counter   Counter
	name      string
	indexName string
}

// New creates a collection service.
func New(counter Counter, name, indexName string) *Service {
	return &Service{counter: counter, name: name, indexName: indexName}
}

// Info returns the collection name and document count.
func (s *Service) Info(ctx context.Context) (Info, error) {
	count, err := s.counter.Count(ctx, s.indexName)
	if err != nil {
		return Info{}, fmt.Errorf("count documents: %w", err)
	}
	return Info{Name: s.name, DocumentCount: count}, nil
}
