package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chatwith/wikichat/internal/domain"
)

// Subject describes who the chatbot answers questions about.
type Subject struct {
	Name        string
	Description string
	BirthDate   time.Time
}

// Options holds the per-call LLM parameters.
type Options struct {
	RelevanceMaxTokens   int
	RelevanceTemperature float32
	SummaryMaxTokens     int
	SummaryTemperature   float32
}

// Service drives the relevance gate and the answer summarizer.
type Service struct {
	completer domain.ChatCompleter
	subject   Subject
	opts      Options
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a chat service.
func New(completer domain.ChatCompleter, subject Subject, opts Options, logger *zap.Logger) *Service {
	return &Service{
		completer: completer,
		subject:   subject,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// CheckRelevance decides whether a query is about the subject. Greetings
// and contextual follow-ups pass without an LLM call. On provider failure
// the query is treated as relevant so legitimate questions are never
// blocked by an outage.
func (s *Service) CheckRelevance(ctx context.Context, query string) bool {
	q := normalizeQuery(query)

	if matchesPhrase(q, greetingPatterns) ||
		matchesPhrase(q, farewellPatterns) ||
		matchesPhrase(q, acknowledgmentPatterns) {
		return true
	}
	if containsAny(q, contextualPatterns) {
		return true
	}

	reply, err := s.completer.Complete(ctx, domain.ChatRequest{
		Prompt:      buildRelevancePrompt(s.subject.Name, s.subject.Description, query),
		MaxTokens:   s.opts.RelevanceMaxTokens,
		Temperature: s.opts.RelevanceTemperature,
	})
	if err != nil {
		s.logger.Error("Relevance check failed, defaulting to relevant", zap.Error(err))
		return true
	}

	return strings.ToUpper(strings.TrimSpace(reply)) == "YES"
}

// Summarize answers the query from retrieved documents. Conversational
// queries get canned replies and age questions are computed from the birth
// date, both without an LLM call.
func (s *Service) Summarize(ctx context.Context, query string, documents []string) string {
	q := normalizeQuery(query)

	if matchesPhrase(q, greetingPatterns) {
		return fmt.Sprintf(
			"Hello! I'm your AI assistant for %[1]s. I can help you learn about his music, movies, "+
				"career, and personal life. What would you like to know about him?", s.subject.Name)
	}

	if matchesPhrase(q, farewellPatterns) {
		return fmt.Sprintf(
			"You're welcome! Feel free to ask me anything else about %s anytime. Have a great day!",
			s.subject.Name)
	}

	if matchesPhrase(q, acknowledgmentPatterns) {
		return fmt.Sprintf(
			"Great! Is there anything else you'd like to know about %s? I can tell you about his "+
				"albums, movies, career highlights, or personal life.", s.subject.Name)
	}

	if containsAny(q, agePatterns) {
		return s.ageAnswer()
	}

	if len(documents) == 0 || documents[0] == "" {
		return fmt.Sprintf(
			"I'd be happy to help you learn about %s! Could you ask me something specific about "+
				"his music, movies, or career?", s.subject.Name)
	}

	if len(documents) > 3 {
		documents = documents[:3]
	}

	reply, err := s.completer.Complete(ctx, domain.ChatRequest{
		Prompt:      buildSummaryPrompt(s.subject.Name, query, documents),
		MaxTokens:   s.opts.SummaryMaxTokens,
		Temperature: s.opts.SummaryTemperature,
	})
	if err != nil {
		s.logger.Error("Summary generation failed", zap.Error(err))
		return "I found some relevant information, but couldn't generate a summary at the moment."
	}

	return strings.TrimSpace(reply)
}

func (s *Service) ageAnswer() string {
	now := s.now()
	birth := s.subject.BirthDate

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}

	return fmt.Sprintf("%s is currently %d years old. He was born on %s.",
		s.subject.Name, age, birth.Format("January 2, 2006"))
}
