// Package importer drives batches of validated candidates through the
// persistence layer. Its contract: every item is attempted, a single item's
// failure never aborts the batch, and the aggregate counts always satisfy
// successful+failed == total with one error entry per failure.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/catalogflow/shelfscan/internal/model"
	"github.com/catalogflow/shelfscan/internal/service"
)

// Importer persists bulk import items.
type Importer struct {
	storage service.Storage
}

// New creates an importer over the given storage.
func New(storage service.Storage) *Importer {
	return &Importer{storage: storage}
}

// Import processes items in input order, isolating per-item failures.
// Validation failures never reach storage; storage failures are recorded
// and processing continues. Order does not affect the aggregate counts.
func (im *Importer) Import(ctx context.Context, items []model.BulkImportItem) model.BulkImportResult {
	result := model.BulkImportResult{}

	for _, item := range items {
		if err := validateItem(&item); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, model.ImportError{
				Item:  item.Candidate.Name,
				Error: err.Error(),
			})
			continue
		}

		product := productFromItem(&item)
		if err := im.storage.CreateProduct(ctx, product); err != nil {
			slog.Warn("Failed to import product",
				"name", item.Candidate.Name,
				"seller", item.SellerID,
				"error", err)
			result.Failed++
			result.Errors = append(result.Errors, model.ImportError{
				Item:  item.Candidate.Name,
				Error: err.Error(),
			})
			continue
		}

		result.Successful++
	}

	slog.Info("Bulk import complete",
		"total", len(items),
		"successful", result.Successful,
		"failed", result.Failed)

	return result
}

// validateItem runs the local checks that short-circuit an item into Failed
// without touching storage.
func validateItem(item *model.BulkImportItem) error {
	if item.Candidate.Name == "" {
		return fmt.Errorf("Product name is required")
	}
	if item.Candidate.Price < 0 {
		return fmt.Errorf("price must be >= 0, got %.2f", item.Candidate.Price)
	}
	if item.Candidate.Quantity < 1 {
		return fmt.Errorf("minimum order quantity must be >= 1, got %.2f", item.Candidate.Quantity)
	}
	return nil
}

func productFromItem(item *model.BulkImportItem) *model.Product {
	return &model.Product{
		ID:            uuid.NewString(),
		SellerID:      item.SellerID,
		Name:          item.Candidate.Name,
		Brand:         item.Candidate.Brand,
		Unit:          item.Candidate.Unit,
		CategoryID:    item.CategoryID,
		SubcategoryID: item.SubcategoryID,
		Price:         item.Candidate.Price,
		Quantity:      item.Candidate.Quantity,
		CreatedAt:     time.Now(),
	}
}
