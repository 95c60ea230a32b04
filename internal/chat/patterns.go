// Package chat implements the LLM side of the search pipeline: the
// relevance gate and the answer summarizer, including the conversational
// shortcuts that skip retrieval entirely.
package chat

import "strings"

var greetingPatterns = []string{
	"hi", "hello", "hey", "good morning", "good afternoon", "good evening",
	"how are you", "what's up", "greetings", "nice to meet you",
}

var farewellPatterns = []string{"thanks", "thank you", "bye", "goodbye", "see you"}

var acknowledgmentPatterns = []string{"ok", "okay", "alright", "got it"}

// contextualPatterns mark short follow-up questions that are assumed to
// continue a conversation about the subject.
var contextualPatterns = []string{
	"so how old", "how old", "what age", "his age", "age now", "current age",
	"so what", "and what", "tell me more", "more info", "more details",
	"when was that", "what year", "which year", "how many", "how much",
}

var agePatterns = []string{"so how old", "how old", "what age", "his age", "age now", "current age"}

// normalizeQuery lowercases and trims a query for pattern matching.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// matchesPhrase reports whether the normalized query is one of the phrases,
// or starts or ends with one.
func matchesPhrase(queryLower string, phrases []string) bool {
	for _, p := range phrases {
		if queryLower == p ||
			strings.HasPrefix(queryLower, p+" ") ||
			strings.HasSuffix(queryLower, " "+p) {
			return true
		}
	}
	return false
}

// containsAny reports whether the normalized query contains any of the
// patterns as a substring.
func containsAny(queryLower string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(queryLower, p) {
			return true
		}
	}
	return false
}

// IsGreeting reports whether the query is a greeting, farewell or
// acknowledgment. These skip retrieval and get a canned reply.
func IsGreeting(query string) bool {
	q := normalizeQuery(query)
	return matchesPhrase(q, greetingPatterns) ||
		matchesPhrase(q, farewellPatterns) ||
		matchesPhrase(q, acknowledgmentPatterns)
}

// IsAgeQuestion reports whether the query asks about the subject's age.
func IsAgeQuestion(query string) bool {
	return containsAny(normalizeQuery(query), agePatterns)
}
