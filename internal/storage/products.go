package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/catalogflow/shelfscan/internal/common"
	"github.com/catalogflow/shelfscan/internal/model"
)

// GetProductsForSeller returns a seller's full catalog.
func (s *SQLiteStorage) GetProductsForSeller(ctx context.Context, sellerID string) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(sellerID, "sellerID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, seller_id, name, brand, unit, category_id, subcategory_id, price, quantity, created_at
		FROM products
		WHERE seller_id = ?
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Name, &p.Brand, &p.Unit,
			&p.CategoryID, &p.SubcategoryID, &p.Price, &p.Quantity, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	slog.Debug("retrieved seller products", "seller", sellerID, "count", len(products))
	return products, nil
}

// GetProductByID returns a product by id, or nil when absent.
func (s *SQLiteStorage) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, seller_id, name, brand, unit, category_id, subcategory_id, price, quantity, created_at
		FROM products
		WHERE id = ?`

	var p model.Product
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.SellerID, &p.Name, &p.Brand, &p.Unit,
		&p.CategoryID, &p.SubcategoryID, &p.Price, &p.Quantity, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// CreateProduct inserts a new catalog entry.
func (s *SQLiteStorage) CreateProduct(ctx context.Context, product *model.Product) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProduct(product); err != nil {
		return err
	}

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, seller_id, name, brand, unit, category_id, subcategory_id, price, quantity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.SellerID, product.Name, product.Brand, product.Unit,
		product.CategoryID, product.SubcategoryID, product.Price, product.Quantity, product.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	slog.Debug("created product", "id", product.ID, "name", product.Name, "seller", product.SellerID)
	return nil
}

// UpdateProductCategory reassigns a product's category and subcategory.
func (s *SQLiteStorage) UpdateProductCategory(ctx context.Context, productID string, categoryID, subcategoryID int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(productID, "productID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE products SET category_id = ?, subcategory_id = ? WHERE id = ?`,
		categoryID, subcategoryID, productID)
	if err != nil {
		return fmt.Errorf("failed to update product category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %s", common.ErrNotFound, productID)
	}

	return nil
}
