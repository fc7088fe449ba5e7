package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogflow/shelfscan/internal/model"
)

func testCategories() []model.Category {
	return []model.Category{
		{ID: 1, Name: "Home Care"},
		{ID: 2, Name: "Personal Care"},
		{ID: 3, Name: "Beverages"},
		{ID: 4, Name: "Dairy"},
		{ID: 5, Name: "Electronics"},
	}
}

func TestMatcher_KnownKeyword(t *testing.T) {
	m := NewMatcher()

	result := m.Match("Surf Excel Detergent 1kg", testCategories(), nil)

	require.NotNil(t, result.Category)
	assert.Equal(t, "Home Care", result.Category.Category.Name)
	assert.InDelta(t, 0.9, result.Category.Confidence, 0.001)

	require.NotNil(t, result.Subcategory)
	assert.True(t, result.Subcategory.IsNew)
	assert.Equal(t, "Detergent", result.Subcategory.SuggestedName)
}

func TestMatcher_ExistingSubcategoryWins(t *testing.T) {
	m := NewMatcher()
	subs := []model.Subcategory{
		{ID: 10, CategoryID: 1, Name: "Detergent"},
		{ID: 11, CategoryID: 2, Name: "Detergent"}, // wrong category, must not match
	}

	result := m.Match("Surf Excel Detergent 1kg", testCategories(), subs)

	require.NotNil(t, result.Subcategory)
	assert.False(t, result.Subcategory.IsNew)
	require.NotNil(t, result.Subcategory.Subcategory)
	assert.Equal(t, 10, result.Subcategory.Subcategory.ID)
}

func TestMatcher_CaseInsensitive(t *testing.T) {
	m := NewMatcher()

	lower := m.Match("organic green tea", testCategories(), nil)
	upper := m.Match("ORGANIC GREEN TEA", testCategories(), nil)
	mixed := m.Match("OrGaNiC GrEeN tEa", testCategories(), nil)

	require.NotNil(t, lower.Category)
	assert.Equal(t, lower, upper)
	assert.Equal(t, lower, mixed)
	assert.Equal(t, "Beverages", lower.Category.Category.Name)
}

func TestMatcher_Deterministic(t *testing.T) {
	m := NewMatcher()
	categories := testCategories()

	first := m.Match("milk chocolate bar", categories, nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Match("milk chocolate bar", categories, nil))
	}
}

func TestMatcher_FirstKeywordInTableOrderWins(t *testing.T) {
	// "green tea" sits above "tea" in the table; both are contained in the
	// name, so the more specific entry must win.
	m := NewMatcher()

	result := m.Match("Lipton Green Tea 100g", testCategories(), nil)

	require.NotNil(t, result.Category)
	assert.Equal(t, "Beverages", result.Category.Category.Name)
	assert.InDelta(t, 0.9, result.Category.Confidence, 0.001, "the green tea entry scores 0.9, the bare tea entry 0.85")
}

func TestMatcher_SkipsKeywordsForAbsentCategories(t *testing.T) {
	// Only Beverages exists. "detergent" sits first in the table but points
	// at the absent Home Care, so matching falls through to the tea keyword.
	m := NewMatcher()
	categories := []model.Category{{ID: 3, Name: "Beverages"}}

	result := m.Match("detergent tea blend", categories, nil)

	require.NotNil(t, result.Category)
	assert.Equal(t, "Beverages", result.Category.Category.Name)
}

func TestMatcher_NoMatch(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name       string
		input      string
		categories []model.Category
	}{
		{name: "unknown product", input: "mystery widget", categories: testCategories()},
		{name: "empty name", input: "", categories: testCategories()},
		{name: "whitespace name", input: "   ", categories: testCategories()},
		{name: "no categories", input: "milk", categories: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := m.Match(tt.input, tt.categories, nil)
			assert.Nil(t, result.Category)
			assert.Nil(t, result.Subcategory)
		})
	}
}

func TestMatcher_CustomKeywordTable(t *testing.T) {
	m := NewMatcherWithKeywords([]Keyword{
		{Keyword: "widget", Category: "Hardware", Label: "Widgets", Confidence: 0.95},
	})
	categories := []model.Category{{ID: 7, Name: "Hardware"}}

	result := m.Match("premium widget", categories, nil)

	require.NotNil(t, result.Category)
	assert.Equal(t, 7, result.Category.Category.ID)
	assert.InDelta(t, 0.95, result.Category.Confidence, 0.001)
}
