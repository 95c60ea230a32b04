package document

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/chatwith/wikichat/internal/domain"
)

// Reserved hash field names. Everything a document carries lives under
// these three fields; metadata is a single JSON blob so arbitrary keys
// never collide with the index schema.
const (
	fieldContent = "__content"
	fieldVector  = "__vector"
	fieldMeta    = "__meta"
)

// buildHashFields converts a domain Document into a flat map[string]string for HSET.
func buildHashFields(doc *domain.Document) (map[string]string, error) {
	m := make(map[string]string, 3)
	m[fieldContent] = doc.Content()
	m[fieldVector] = vectorToBytes(doc.Vector())

	meta, err := json.Marshal(doc.Metadata())
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	m[fieldMeta] = string(meta)

	return m, nil
}

// parseHashFields converts a flat hash map back into a domain Document.
func parseHashFields(id string, m map[string]string) (domain.Document, error) {
	var metadata map[string]any
	if raw := m[fieldMeta]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			return domain.Document{}, fmt.Errorf("unmarshal metadata for %s: %w", id, err)
		}
	}

	return domain.ReconstructDocument(
		id,
		m[fieldContent],
		metadata,
		bytesToVector(m[fieldVector]),
	), nil
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
