package db

// VectorAttribute is the schema alias of the vector field; KNN queries
// address it as @vector.
const VectorAttribute = "vector"

// VectorScoreAttribute is the property RediSearch yields the KNN distance
// under: __<attribute>_score for the aliased vector attribute.
const VectorScoreAttribute = "__" + VectorAttribute + "_score"

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
// Distance is the raw cosine distance reported by the index (lower is closer).
type SearchEntry struct {
	Key      string
	Distance float64
	Fields   map[string]string
}
