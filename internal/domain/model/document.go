// Package model contains domain models passed between layers.
package model

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/okian/readability/internal/domain/scoring"
	"github.com/okian/readability/internal/domain/textstats"
)

// Document is a plain-text input. It is never mutated after creation.
type Document struct {
	ID   string // uuid assigned on creation
	Name string // display name, usually the source file's base name
	Text string
}

// NewDocument wraps text in a Document with a fresh ID. A path-like name is
// reduced to its base name.
func NewDocument(name, text string) Document {
	if name != "" {
		name = filepath.Base(name)
	}
	return Document{
		ID:   uuid.New().String(),
		Name: name,
		Text: text,
	}
}

// Report is the full readability analysis of one Document.
type Report struct {
	DocumentID string            `json:"document_id"`
	Name       string            `json:"name,omitempty"`
	Metrics    textstats.Metrics `json:"metrics"`
	Scores     []scoring.Result  `json:"scores"`
	AverageAge float64           `json:"average_age"`
	AnalyzedAt time.Time         `json:"analyzed_at"`
}

// Score returns the result for kind k, if present.
func (r Report) Score(k scoring.Kind) (scoring.Result, bool) {
	for _, s := range r.Scores {
		if s.Kind == k {
			return s, true
		}
	}
	return scoring.Result{}, false
}
