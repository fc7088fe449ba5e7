package model

import "fmt"

// ImportError identifies one failed item in a batch operation.
type ImportError struct {
	Item  string
	Error string
}

// BulkImportResult aggregates the outcome of a bulk import. The accounting
// invariant Successful+Failed == total submitted and len(Errors) == Failed
// always holds.
type BulkImportResult struct {
	Errors     []ImportError
	Successful int
	Failed     int
}

// Validate checks the accounting invariant against the submitted total.
func (r *BulkImportResult) Validate(total int) error {
	if r.Successful+r.Failed != total {
		return fmt.Errorf("import accounting broken: %d successful + %d failed != %d submitted",
			r.Successful, r.Failed, total)
	}
	if len(r.Errors) != r.Failed {
		return fmt.Errorf("import accounting broken: %d errors recorded for %d failures",
			len(r.Errors), r.Failed)
	}
	return nil
}

// MoveResult reports a batch category reassignment.
type MoveResult struct {
	FailedProducts []ImportError
	MovedCount     int
}

// CopyResult reports a batch product duplication. Copies carry fresh
// identities; originals are untouched.
type CopyResult struct {
	Copies         []Product
	FailedProducts []ImportError
	CopiedCount    int
}
