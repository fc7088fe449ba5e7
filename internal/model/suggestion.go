package model

import "fmt"

// CategorySuggestion pairs an existing category with a match confidence.
// Category always refers to an existing entity; the matcher never invents
// top-level categories.
type CategorySuggestion struct {
	Category   Category
	Confidence float64
}

// SubcategorySuggestion proposes an existing subcategory or, when IsNew is
// true, a name for one that does not exist yet. Subcategory stays nil until
// (and unless) the proposed subcategory is created.
type SubcategorySuggestion struct {
	Subcategory   *Subcategory
	SuggestedName string
	Confidence    float64
	IsNew         bool
}

// MatchResult is the category matcher's output for one candidate. Both
// fields are nil when the candidate is unclassified, which is a valid
// outcome rather than an error.
type MatchResult struct {
	Category    *CategorySuggestion
	Subcategory *SubcategorySuggestion
}

// Validate enforces the containment invariant: a returned subcategory must
// belong to the suggested category.
func (m *MatchResult) Validate() error {
	if m.Subcategory == nil || m.Subcategory.Subcategory == nil {
		return nil
	}
	if m.Category == nil {
		return fmt.Errorf("subcategory suggestion without a category suggestion")
	}
	if m.Subcategory.Subcategory.CategoryID != m.Category.Category.ID {
		return fmt.Errorf("subcategory %d belongs to category %d, not %d",
			m.Subcategory.Subcategory.ID, m.Subcategory.Subcategory.CategoryID, m.Category.Category.ID)
	}
	return nil
}
