package chat

import (
	"fmt"
	"strings"
)

// buildRelevancePrompt asks the model for a YES/NO verdict on whether the
// query is about the subject. Greetings and contextual follow-ups count as
// relevant so conversation flow is never blocked.
func buildRelevancePrompt(subjectName, subjectDescription, query string) string {
	return fmt.Sprintf(`
You are a relevance checker for a Wikipedia search system about %[1]q, %[2]s.

Analyze this query and determine if it's asking about %[1]s or topics related to them (their music, movies, career, personal life, etc.).

IMPORTANT: Always respond "YES" to:
- Greetings (hi, hello, hey, etc.)
- Polite phrases (thank you, please, etc.)
- Questions about %[1]s (explicit or with pronouns like "his", "he", "him")
- Questions about music, albums, movies, films, acting, career when in context of an entertainment figure
- Follow-up questions about age, dates, numbers, details (like "how old?", "so what?", "when?")
- General conversational responses

Query: %[3]q

CONTEXT: This is a chatbot specifically about %[1]s, so:
1. Questions using pronouns like "his albums", "his movies", "he acted" are referring to them
2. Follow-up questions like "how old?", "so what age?", "when was that?" are asking for more details about them
3. Short contextual questions are likely continuing a conversation about %[1]s

Respond with only "YES" if the query is relevant to %[1]s OR is a greeting/polite phrase, or "NO" if it's asking about something completely unrelated.

Examples:
- "Hi" -> YES (greeting)
- "Thank you" -> YES (polite phrase)
- "Who is %[1]s?" -> YES
- "What movies did he act in?" -> YES
- "List his albums" -> YES (referring to the subject's albums)
- "How old?" -> YES (follow-up question about age)
- "What is the weather today?" -> NO
- "How to cook pasta?" -> NO

Response:`, subjectName, subjectDescription, query)
}

// buildSummaryPrompt asks the model to answer the query from retrieved
// content, choosing between structured and conversational formatting.
func buildSummaryPrompt(subjectName, query string, documents []string) string {
	combined := strings.Join(documents, "\n\n")

	return fmt.Sprintf(`
Based on the following information about %[1]s, provide a well-formatted answer to the user's question.

User Question: %[2]q

Information from Wikipedia:
%[3]s

Instructions:
1. Analyze if the user is asking for structured data (lists, tables, chronological info, etc.)
2. If they want structured data (like "list albums", "show movies", "timeline", etc.), format as:
   - Use bullet points for lists
   - Use table format with | separators for tabular data
   - Use numbered lists for chronological items
   - Example table format: | Album Name | Year | Notes |
3. If it's a general question, provide a conversational 2-4 sentence answer
4. Focus on directly answering the user's question
5. Use only the information provided
6. If information is incomplete, mention what you found

Detect these structured request patterns:
- "list", "show", "enumerate", "table" -> Use structured format
- "albums", "movies", "films", "songs" + "names/titles/years" -> Use table/list
- "chronology", "timeline", "order" -> Use numbered list
- General questions -> Use conversational format

Answer:`, subjectName, query, combined)
}
