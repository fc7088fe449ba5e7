package importer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/catalogflow/shelfscan/internal/model"
)

// Move reassigns the category and subcategory of existing products.
// Unknown ids are reported per-item; they never abort the batch.
func (im *Importer) Move(ctx context.Context, productIDs []string, categoryID, subcategoryID int) model.MoveResult {
	result := model.MoveResult{}

	for _, id := range productIDs {
		product, err := im.storage.GetProductByID(ctx, id)
		if err != nil {
			result.FailedProducts = append(result.FailedProducts, model.ImportError{Item: id, Error: err.Error()})
			continue
		}
		if product == nil {
			result.FailedProducts = append(result.FailedProducts, model.ImportError{Item: id, Error: "product not found"})
			continue
		}

		if err := im.storage.UpdateProductCategory(ctx, id, categoryID, subcategoryID); err != nil {
			result.FailedProducts = append(result.FailedProducts, model.ImportError{Item: id, Error: err.Error()})
			continue
		}

		result.MovedCount++
	}

	slog.Info("Bulk move complete",
		"requested", len(productIDs),
		"moved", result.MovedCount,
		"failed", len(result.FailedProducts))

	return result
}

// Copy duplicates existing products into a new category. Every copy gets a
// fresh identity; the originals are left untouched in their category.
func (im *Importer) Copy(ctx context.Context, productIDs []string, categoryID, subcategoryID int) model.CopyResult {
	result := model.CopyResult{}

	for _, id := range productIDs {
		original, err := im.storage.GetProductByID(ctx, id)
		if err != nil {
			result.FailedProducts = append(result.FailedProducts, model.ImportError{Item: id, Error: err.Error()})
			continue
		}
		if original == nil {
			result.FailedProducts = append(result.FailedProducts, model.ImportError{Item: id, Error: "product not found"})
			continue
		}

		duplicate := *original
		duplicate.ID = uuid.NewString()
		duplicate.CategoryID = categoryID
		duplicate.SubcategoryID = subcategoryID

		if err := im.storage.CreateProduct(ctx, &duplicate); err != nil {
			result.FailedProducts = append(result.FailedProducts, model.ImportError{Item: id, Error: err.Error()})
			continue
		}

		result.Copies = append(result.Copies, duplicate)
		result.CopiedCount++
	}

	slog.Info("Bulk copy complete",
		"requested", len(productIDs),
		"copied", result.CopiedCount,
		"failed", len(result.FailedProducts))

	return result
}
