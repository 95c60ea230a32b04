package document

import (
	"github.com/chatwith/wikichat/internal/db"
	"github.com/chatwith/wikichat/internal/domain"
)

// HNSWConfig tunes the vector index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// IndexDefinition builds the FT index over the document hash layout.
// The schema must name the same fields buildHashFields writes.
func IndexDefinition(name string, dimensions int, hnsw HNSWConfig) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     name,
		Prefixes: []string{domain.KeyPrefix},
		Fields: []db.IndexField{
			{Name: fieldContent, Type: db.IndexFieldText},
			{
				Name:              fieldVector,
				Alias:             db.VectorAttribute,
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         dimensions,
				VectorDistance:    db.DistanceCosine,
				VectorM:           hnsw.M,
				VectorEFConstruct: hnsw.EFConstruct,
			},
		},
	}
}
