// Package match assigns candidates to categories and subcategories by
// keyword containment. Matching is a pure function of the candidate name
// and the supplied category sets: identical inputs always yield identical
// outputs, and matching is case-insensitive.
package match

import (
	"strings"

	"github.com/catalogflow/shelfscan/internal/model"
)

// Matcher matches candidate names against a fixed keyword table.
type Matcher struct {
	keywords []Keyword
}

// NewMatcher creates a matcher over the default keyword table.
func NewMatcher() *Matcher {
	return &Matcher{keywords: DefaultKeywords()}
}

// NewMatcherWithKeywords creates a matcher over a custom table. Table order
// decides ties: the first matching keyword wins.
func NewMatcherWithKeywords(keywords []Keyword) *Matcher {
	return &Matcher{keywords: keywords}
}

// Match finds the category and subcategory for a candidate name. The first
// keyword in table order contained in the lowercased name wins; best-match
// scoring is deliberately not attempted. An unmatched name returns nil
// suggestions, which is "unclassified", not an error.
func (m *Matcher) Match(name string, categories []model.Category, subcategories []model.Subcategory) model.MatchResult {
	if len(categories) == 0 {
		return model.MatchResult{}
	}

	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return model.MatchResult{}
	}

	for _, kw := range m.keywords {
		if !strings.Contains(normalized, kw.Keyword) {
			continue
		}

		category, ok := findCategory(categories, kw.Category)
		if !ok {
			// Keyword points at a category this seller does not have;
			// later keywords may still match.
			continue
		}

		result := model.MatchResult{
			Category: &model.CategorySuggestion{
				Category:   category,
				Confidence: kw.Confidence,
			},
			Subcategory: matchSubcategory(normalized, category.ID, kw, subcategories),
		}
		return result
	}

	return model.MatchResult{}
}

// matchSubcategory repeats the containment test against the subcategories of
// the winning category. No hit yields a new-subcategory proposal named after
// the keyword's canonical label.
func matchSubcategory(normalized string, categoryID int, kw Keyword, subcategories []model.Subcategory) *model.SubcategorySuggestion {
	for i := range subcategories {
		sub := subcategories[i]
		if sub.CategoryID != categoryID {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(sub.Name)) {
			return &model.SubcategorySuggestion{
				Subcategory: &sub,
				Confidence:  kw.Confidence,
			}
		}
	}

	return &model.SubcategorySuggestion{
		SuggestedName: kw.Label,
		Confidence:    kw.Confidence,
		IsNew:         true,
	}
}

func findCategory(categories []model.Category, name string) (model.Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return model.Category{}, false
}
