// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// Confidence holds per-field and overall reliability scores in [0, 1].
type Confidence struct {
	Name     float64
	Price    float64
	Quantity float64
	Brand    float64
	Overall  float64
}

// Validate ensures all confidence scores fall within [0, 1].
func (c Confidence) Validate() error {
	for _, pair := range []struct {
		field string
		score float64
	}{
		{"name", c.Name},
		{"price", c.Price},
		{"quantity", c.Quantity},
		{"brand", c.Brand},
		{"overall", c.Overall},
	} {
		if pair.score < 0.0 || pair.score > 1.0 {
			return fmt.Errorf("%s confidence must be between 0.0 and 1.0, got %.2f", pair.field, pair.score)
		}
	}
	return nil
}

// ExtractedCandidate is one prospective product pulled from a receipt,
// awaiting scoring, categorization, and import.
type ExtractedCandidate struct {
	Name         string
	Unit         string
	Brand        string
	OriginalText string
	Price        float64
	Quantity     float64
	Confidence   Confidence
	NeedsReview  bool
}

// Validate checks the structural invariants of a candidate.
func (c *ExtractedCandidate) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("candidate name is required")
	}
	if c.Price < 0 {
		return fmt.Errorf("candidate price must be >= 0, got %.2f", c.Price)
	}
	if c.Quantity < 0 {
		return fmt.Errorf("candidate quantity must be >= 0, got %.2f", c.Quantity)
	}
	return c.Confidence.Validate()
}
