// Package domain holds the core types and contracts shared between layers.
package domain

import (
	"fmt"
	"regexp"
)

// KeyPrefix namespaces all keys this service writes to the vector database.
const KeyPrefix = "wikichat:"

// MaxContentSize is the maximum document content size in bytes.
const MaxContentSize = 163840 // 160KB

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// Document is a stored text document with optional metadata and its
// embedding vector.
type Document struct {
	id       string
	content  string
	metadata map[string]any
	vector   []float32
}

// NewDocument validates and creates a Document.
// ID: ^[a-zA-Z0-9_.-]+$, 1-256 chars. Content: non-empty, max 160KB.
func NewDocument(id, content string, metadata map[string]any) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required: %w", ErrInvalidDocument)
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("document ID too long (max 256): %w", ErrInvalidDocument)
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf(
			"document ID must be alphanumeric with dots, underscores and hyphens: %w", ErrInvalidDocument)
	}
	if content == "" {
		return Document{}, fmt.Errorf("content is required: %w", ErrInvalidDocument)
	}
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("content too large (max %d bytes): %w", MaxContentSize, ErrInvalidDocument)
	}

	return Document{id: id, content: content, metadata: cloneMetadata(metadata)}, nil
}

// ReconstructDocument creates a Document without validation (storage hydration).
func ReconstructDocument(id, content string, metadata map[string]any, vector []float32) Document {
	return Document{id: id, content: content, metadata: metadata, vector: vector}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Content returns the document text content.
func (d *Document) Content() string { return d.content }

// Metadata returns the metadata fields. Never nil.
func (d *Document) Metadata() map[string]any {
	if d.metadata == nil {
		return map[string]any{}
	}
	return d.metadata
}

// Vector returns the embedding vector.
func (d *Document) Vector() []float32 { return d.vector }

// SetVector sets the vector in place.
func (d *Document) SetVector(v []float32) { d.vector = v }

func cloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
