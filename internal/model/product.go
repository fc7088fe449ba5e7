package model

import "time"

// Product is a catalog entry owned by a seller.
type Product struct {
	CreatedAt     time.Time
	ID            string
	SellerID      string
	Name          string
	Brand         string
	Unit          string
	CategoryID    int
	SubcategoryID int
	Price         float64
	Quantity      float64
}

// DuplicateVerdict is the duplicate detector's decision for one candidate
// against one seller's existing catalog. A duplicate is a warning, not an
// error; the caller decides whether to proceed.
type DuplicateVerdict struct {
	Reason           string
	MatchedProductID string
	IsDuplicate      bool
}

// BulkImportItem is a fully prepared candidate ready for persistence:
// scored, categorized, and duplicate-annotated.
type BulkImportItem struct {
	Candidate     ExtractedCandidate
	SellerID      string
	CategoryID    int
	SubcategoryID int
	Verdict       DuplicateVerdict
}
