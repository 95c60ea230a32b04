package sdk

import "errors"

// Health is the server health report.
type Health struct {
	Status    string `json:"status"` // "healthy" or "degraded"
	Database  string `json:"database"`
	Embedding string `json:"embedding,omitempty"`
}

// Document is a stored document.
type Document struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

// SearchAnswer is the outcome of a search: the retrieved documents as
// parallel arrays plus the generated summary.
type SearchAnswer struct {
	Documents  []string         `json:"documents"`
	Metadatas  []map[string]any `json:"metadatas"`
	Distances  []float64        `json:"distances"`
	IDs        []string         `json:"ids"`
	Summary    string           `json:"summary,omitempty"`
	IsRelevant bool             `json:"is_relevant"`
	Message    string           `json:"message,omitempty"`
}

// CollectionInfo describes the document collection.
type CollectionInfo struct {
	CollectionName string `json:"collection_name"`
	DocumentCount  int    `json:"document_count"`
}

// Sentinel errors matched by error code. Use errors.Is().
var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalid      = errors.New("invalid request")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is an error response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return "wikichat api: " + e.Code + ": " + e.Message
}

// Is maps API error codes onto the exported sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == "document_not_found"
	case ErrInvalid:
		return e.Code == "validation_failed" || e.Code == "bad_request"
	case ErrUnauthorized:
		return e.StatusCode == 401
	}
	return false
}
