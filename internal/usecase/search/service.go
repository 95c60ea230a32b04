// Package search runs the retrieval pipeline: relevance gate,
// conversational shortcuts, KNN search and summary generation.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/chatwith/wikichat/internal/chat"
	"github.com/chatwith/wikichat/internal/domain"
)

const (
	defaultTopK = 5
	maxTopK     = 20
)

// Service drives the search pipeline.
type Service struct {
	repo        SearchRepository
	embedder    Embedder
	chat        ChatService
	subjectName string
}

// New creates a search service.
func New(repo SearchRepository, embedder Embedder, chatSvc ChatService, subjectName string) *Service {
	return &Service{repo: repo, embedder: embedder, chat: chatSvc, subjectName: subjectName}
}

// Search answers a query. Irrelevant queries are rejected with a message,
// greetings and age questions are answered without retrieval, everything
// else goes through embedding, KNN search and summarization.
func (s *Service) Search(ctx context.Context, query string, topK int) (domain.ChatAnswer, error) {
	if strings.TrimSpace(query) == "" {
		return domain.ChatAnswer{}, fmt.Errorf("query is required: %w", domain.ErrInvalidQuery)
	}

	if topK <= 0 {
		topK = defaultTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	if !s.chat.CheckRelevance(ctx, query) {
		return domain.ChatAnswer{
			IsRelevant: false,
			Message: fmt.Sprintf("Your question doesn't seem to be related to %s. "+
				"Please ask about his music, movies, career, or personal life.", s.subjectName),
		}, nil
	}

	// Greetings and age questions skip retrieval entirely.
	if chat.IsGreeting(query) || chat.IsAgeQuestion(query) {
		return domain.ChatAnswer{
			IsRelevant: true,
			Summary:    s.chat.Summarize(ctx, query, nil),
		}, nil
	}

	result, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return domain.ChatAnswer{}, fmt.Errorf("vectorize query: %w", err)
	}

	hits, err := s.repo.SearchKNN(ctx, result.Embedding, topK)
	if err != nil {
		return domain.ChatAnswer{}, fmt.Errorf("search: %w: %w", domain.ErrVectorStore, err)
	}

	if len(hits) == 0 {
		return domain.ChatAnswer{
			IsRelevant: true,
			Summary: fmt.Sprintf("I couldn't find specific information about that topic "+
				"in the available content about %s.", s.subjectName),
			Message: "No matching content found.",
		}, nil
	}

	documents := make([]string, 0, len(hits))
	for _, h := range hits {
		documents = append(documents, h.Content)
	}

	return domain.ChatAnswer{
		Hits:       hits,
		IsRelevant: true,
		Summary:    s.chat.Summarize(ctx, query, documents),
	}, nil
}
