package dupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogflow/shelfscan/internal/model"
)

func catalog(names ...string) []model.Product {
	products := make([]model.Product, len(names))
	for i, n := range names {
		products[i] = model.Product{ID: n + "-id", Name: n, SellerID: "seller-1"}
	}
	return products
}

func TestDetector_ExactMatch(t *testing.T) {
	d := NewDetector(DefaultSimilarityThreshold)

	tests := []struct {
		name      string
		candidate string
		existing  []model.Product
		wantDupe  bool
	}{
		{
			name:      "identical name",
			candidate: "Amul Milk 1L",
			existing:  catalog("Amul Milk 1L"),
			wantDupe:  true,
		},
		{
			name:      "case and whitespace insensitive",
			candidate: "  amul milk 1l ",
			existing:  catalog("Amul Milk 1L"),
			wantDupe:  true,
		},
		{
			name:      "short names still match exactly",
			candidate: "Oil",
			existing:  catalog("oil"),
			wantDupe:  true,
		},
		{
			name:      "no catalog entry",
			candidate: "Amul Milk 1L",
			existing:  catalog("Britannia Bread"),
			wantDupe:  false,
		},
		{
			name:      "empty catalog",
			candidate: "Amul Milk 1L",
			existing:  nil,
			wantDupe:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := d.Check(tt.candidate, tt.existing)
			assert.Equal(t, tt.wantDupe, verdict.IsDuplicate)
			if tt.wantDupe {
				assert.NotEmpty(t, verdict.MatchedProductID)
				assert.NotEmpty(t, verdict.Reason)
			}
		})
	}
}

func TestDetector_FuzzyContainment(t *testing.T) {
	d := NewDetector(DefaultSimilarityThreshold)

	// "amul milk pack" inside "amul milk packs": 14/15 ≈ 0.93, over the
	// threshold. "amul milk 1l" inside the longer pack name: 12/30 = 0.4, under.
	verdict := d.Check("Amul Milk Pack", catalog("Amul Milk Packs"))
	require.True(t, verdict.IsDuplicate)
	assert.Contains(t, verdict.Reason, "similar to existing product")

	verdict = d.Check("Amul Milk 1L", catalog("Amul Milk 1L Family Value Pack"))
	assert.False(t, verdict.IsDuplicate)
}

func TestDetector_FuzzyWordOverlap(t *testing.T) {
	d := NewDetector(0.6)

	// Not substrings of one another: 2 shared tokens of 3 → 0.67 > 0.6.
	verdict := d.Check("Amul Gold Milk", catalog("Amul Fresh Milk"))
	require.True(t, verdict.IsDuplicate)
	assert.Equal(t, "Amul Fresh Milk-id", verdict.MatchedProductID)

	// 1 shared token of 3 → 0.33.
	verdict = d.Check("Amul Gold Milk", catalog("Amul Butter Spread"))
	assert.False(t, verdict.IsDuplicate)
}

func TestDetector_ShortNamesSkipFuzzy(t *testing.T) {
	d := NewDetector(DefaultSimilarityThreshold)

	// "oil" is inside "oily" with ratio 3/4 but fuzzy is gated on length.
	verdict := d.Check("Oil", catalog("Oily"))
	assert.False(t, verdict.IsDuplicate)

	verdict = d.Check("Sunflower Oil", catalog("Tea"))
	assert.False(t, verdict.IsDuplicate)
}

func TestDetector_ThresholdBoundary(t *testing.T) {
	// "milk bottle" in "milk bottles": 11/12 ≈ 0.917.
	strict := NewDetector(0.95)
	assert.False(t, strict.Check("Milk Bottle", catalog("Milk Bottles")).IsDuplicate)

	lenient := NewDetector(0.85)
	assert.True(t, lenient.Check("Milk Bottle", catalog("Milk Bottles")).IsDuplicate)
}

func TestDetector_EmptyCandidate(t *testing.T) {
	d := NewDetector(DefaultSimilarityThreshold)

	verdict := d.Check("", catalog("Amul Milk"))
	assert.False(t, verdict.IsDuplicate)

	verdict = d.Check("   ", catalog("Amul Milk"))
	assert.False(t, verdict.IsDuplicate)
}

func TestDetector_NonPositiveThresholdFallsBack(t *testing.T) {
	d := NewDetector(-1)

	// 0.917 similarity: above the 0.85 default, flagged.
	verdict := d.Check("Milk Bottle", catalog("Milk Bottles"))
	assert.True(t, verdict.IsDuplicate)
}
