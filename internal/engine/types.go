package engine

import (
	"fmt"

	"github.com/catalogflow/shelfscan/internal/common"
	"github.com/catalogflow/shelfscan/internal/model"
)

// CategorizeRequest is one batch of candidates to categorize and annotate.
// Batch selects one-shot AI categorization for the whole list; when it
// fails, single-item categorization is attempted before giving up.
type CategorizeRequest struct {
	SellerID string
	Products []model.ExtractedCandidate
	Batch    bool
}

// Validate rejects structurally invalid requests before they enter the
// pipeline.
func (r *CategorizeRequest) Validate() error {
	if len(r.Products) == 0 {
		return common.ErrEmptyBatch
	}
	for i, p := range r.Products {
		if p.Name == "" {
			return fmt.Errorf("%w: product at index %d has no name", common.ErrInvalidInput, i)
		}
	}
	return nil
}

// CategorizedProduct is one candidate after scoring, categorization, and
// duplicate annotation, ready to become a BulkImportItem.
type CategorizedProduct struct {
	Candidate   model.ExtractedCandidate
	Category    *model.CategorySuggestion
	Subcategory *model.SubcategorySuggestion
	Verdict     model.DuplicateVerdict
}

// CategorizeResult is the aggregate outcome of one categorization batch.
type CategorizeResult struct {
	Products                []CategorizedProduct
	Categories              []model.Category
	Subcategories           []model.Subcategory
	NewSubcategoriesCreated int
}
