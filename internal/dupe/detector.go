// Package dupe detects duplicate candidates against a seller's existing
// catalog using exact and cheap fuzzy string matching. The fuzzy heuristic
// deliberately avoids an edit-distance matrix: catalogs are checked once per
// import batch, so O(n) containment and token-overlap checks per candidate
// are enough.
package dupe

import (
	"fmt"
	"strings"

	"github.com/catalogflow/shelfscan/internal/model"
)

// DefaultSimilarityThreshold is the fuzzy-match cutoff. Scores above it
// flag a duplicate.
const DefaultSimilarityThreshold = 0.85

// minFuzzyLength gates fuzzy matching: names this short produce too many
// accidental containments.
const minFuzzyLength = 3

// Detector checks candidate names against existing products.
type Detector struct {
	threshold float64
}

// NewDetector creates a detector with the given similarity threshold. A
// non-positive threshold falls back to the default.
func NewDetector(threshold float64) *Detector {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Detector{threshold: threshold}
}

// Check compares a candidate name against the seller's existing products
// and returns a verdict. A duplicate is a warning for the caller, never an
// error.
func (d *Detector) Check(name string, existing []model.Product) model.DuplicateVerdict {
	candidate := normalize(name)
	if candidate == "" {
		return model.DuplicateVerdict{}
	}

	for _, p := range existing {
		if normalize(p.Name) == candidate {
			return model.DuplicateVerdict{
				IsDuplicate:      true,
				Reason:           fmt.Sprintf("exact name match with existing product %q", p.Name),
				MatchedProductID: p.ID,
			}
		}
	}

	if len(candidate) <= minFuzzyLength {
		return model.DuplicateVerdict{}
	}

	for _, p := range existing {
		other := normalize(p.Name)
		if len(other) <= minFuzzyLength {
			continue
		}

		score := similarity(candidate, other)
		if score > d.threshold {
			return model.DuplicateVerdict{
				IsDuplicate:      true,
				Reason:           fmt.Sprintf("similar to existing product %q (%.0f%% match)", p.Name, score*100),
				MatchedProductID: p.ID,
			}
		}
	}

	return model.DuplicateVerdict{}
}

// similarity scores two normalized names. Substring pairs score by
// containment ratio (shorter length over longer); everything else scores by
// word overlap over the larger token set.
func similarity(a, b string) float64 {
	if strings.Contains(a, b) || strings.Contains(b, a) {
		shorter, longer := len(a), len(b)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer)
	}

	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(tokensA))
	for _, t := range tokensA {
		setA[t] = true
	}

	common := 0
	seen := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		if setA[t] && !seen[t] {
			common++
			seen[t] = true
		}
	}

	max := len(tokensA)
	if len(tokensB) > max {
		max = len(tokensB)
	}
	return float64(common) / float64(max)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
