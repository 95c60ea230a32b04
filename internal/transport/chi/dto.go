package chi

import "github.com/chatwith/wikichat/internal/domain"

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Embedding string `json:"embedding,omitempty"`
}

type addDocumentRequest struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type documentResponse struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

type searchRequest struct {
	Query    string `json:"query"`
	NResults int    `json:"n_results"`
}

type searchResponse struct {
	Documents  []string         `json:"documents"`
	Metadatas  []map[string]any `json:"metadatas"`
	Distances  []float64        `json:"distances"`
	IDs        []string         `json:"ids"`
	Summary    string           `json:"summary,omitempty"`
	IsRelevant bool             `json:"is_relevant"`
	Message    string           `json:"message,omitempty"`
}

type collectionInfoResponse struct {
	CollectionName string `json:"collection_name"`
	DocumentCount  int    `json:"document_count"`
}

// answerToResponse flattens the pipeline answer into the parallel-array
// response shape.
func answerToResponse(a domain.ChatAnswer) searchResponse {
	resp := searchResponse{
		Documents:  make([]string, 0, len(a.Hits)),
		Metadatas:  make([]map[string]any, 0, len(a.Hits)),
		Distances:  make([]float64, 0, len(a.Hits)),
		IDs:        make([]string, 0, len(a.Hits)),
		Summary:    a.Summary,
		IsRelevant: a.IsRelevant,
		Message:    a.Message,
	}

	for _, h := range a.Hits {
		resp.Documents = append(resp.Documents, h.Content)
		meta := h.Metadata
		if meta == nil {
			meta = map[string]any{}
		}
		resp.Metadatas = append(resp.Metadatas, meta)
		resp.Distances = append(resp.Distances, h.Distance)
		resp.IDs = append(resp.IDs, h.ID)
	}

	return resp
}
