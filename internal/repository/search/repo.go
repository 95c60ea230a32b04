// Package search runs KNN queries against the vector index and maps raw
// entries into domain search hits.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chatwith/wikichat/internal/db"
	"github.com/chatwith/wikichat/internal/domain"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.SearchRepository.
type Repo struct {
	store     store
	indexName string
}

// New creates a search repository bound to one index.
func New(s store, indexName string) *Repo {
	return &Repo{store: s, indexName: indexName}
}

// SearchKNN performs a KNN (vector similarity) search and returns hits
// ordered closest first.
func (r *Repo) SearchKNN(ctx context.Context, vector []float32, topK int) ([]domain.SearchHit, error) {
	q := &db.KNNQuery{
		IndexName:    r.indexName,
		Vector:       vector,
		K:            topK,
		ReturnFields: []string{"__content", "__meta"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	return parseKNNResults(sr)
}

// parseKNNResults converts db.SearchResult into []domain.SearchHit.
func parseKNNResults(sr *db.SearchResult) ([]domain.SearchHit, error) {
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	hits := make([]domain.SearchHit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		hit := domain.SearchHit{
			ID:       strings.TrimPrefix(entry.Key, domain.KeyPrefix),
			Content:  entry.Fields["__content"],
			Distance: entry.Distance,
		}
		if raw := entry.Fields["__meta"]; raw != "" {
			var meta map[string]any
			if err := json.Unmarshal([]byte(raw), &meta); err == nil {
				hit.Metadata = meta
			}
		}
		hits = append(hits, hit)
	}

	return hits, nil
}
