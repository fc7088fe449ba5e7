// Package score normalizes candidate confidence and decides the review flag.
package score

import "github.com/catalogflow/shelfscan/internal/model"

// DefaultReviewThreshold flags candidates whose overall confidence falls
// below it for mandatory human review.
const DefaultReviewThreshold = 0.7

// Field weights for the overall confidence. Name dominates because a wrong
// name poisons categorization and duplicate detection downstream.
const (
	nameWeight     = 0.35
	priceWeight    = 0.30
	quantityWeight = 0.20
	brandWeight    = 0.15
)

// Scorer assigns normalized confidence to candidates. It is a pure,
// stateless function over its input; the threshold is fixed at construction.
type Scorer struct {
	reviewThreshold float64
}

// NewScorer creates a scorer with the given review threshold. A
// non-positive threshold falls back to the default.
func NewScorer(reviewThreshold float64) *Scorer {
	if reviewThreshold <= 0 {
		reviewThreshold = DefaultReviewThreshold
	}
	return &Scorer{reviewThreshold: reviewThreshold}
}

// Score returns the candidate with a normalized confidence object and the
// review flag set. Explicit field confidences pass through unchanged; a
// field with no observation keeps confidence 0 and forces review regardless
// of the other fields.
func (s *Scorer) Score(c model.ExtractedCandidate) model.ExtractedCandidate {
	c.Confidence.Name = clamp(c.Confidence.Name)
	c.Confidence.Price = clamp(c.Confidence.Price)
	c.Confidence.Quantity = clamp(c.Confidence.Quantity)
	c.Confidence.Brand = clamp(c.Confidence.Brand)

	if c.Confidence.Overall > 0 {
		c.Confidence.Overall = clamp(c.Confidence.Overall)
	} else {
		c.Confidence.Overall = clamp(nameWeight*c.Confidence.Name +
			priceWeight*c.Confidence.Price +
			quantityWeight*c.Confidence.Quantity +
			brandWeight*c.Confidence.Brand)
	}

	c.NeedsReview = c.Confidence.Overall < s.reviewThreshold
	if c.Confidence.Name == 0 || c.Confidence.Price == 0 ||
		c.Confidence.Quantity == 0 || c.Confidence.Brand == 0 {
		c.NeedsReview = true
	}

	return c
}

// ScoreAll scores every candidate in place order.
func (s *Scorer) ScoreAll(candidates []model.ExtractedCandidate) []model.ExtractedCandidate {
	scored := make([]model.ExtractedCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = s.Score(c)
	}
	return scored
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
