package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/catalogflow/shelfscan/internal/model"
)

// GetSubcategories returns all active subcategories ordered by name.
func (s *SQLiteStorage) GetSubcategories(ctx context.Context) ([]model.Subcategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, category_id, created_at, is_active
		FROM subcategories
		WHERE is_active = 1
		ORDER BY name`

	return s.querySubcategories(ctx, query)
}

// GetSubcategoriesByCategory returns the active subcategories of one category.
func (s *SQLiteStorage) GetSubcategoriesByCategory(ctx context.Context, categoryID int) ([]model.Subcategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, category_id, created_at, is_active
		FROM subcategories
		WHERE category_id = ? AND is_active = 1
		ORDER BY name`

	return s.querySubcategories(ctx, query, categoryID)
}

func (s *SQLiteStorage) querySubcategories(ctx context.Context, query string, args ...any) ([]model.Subcategory, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subcategories: %w", err)
	}
	defer rows.Close()

	var subcategories []model.Subcategory
	for rows.Next() {
		var sub model.Subcategory
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.CategoryID, &sub.CreatedAt, &sub.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		subcategories = append(subcategories, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subcategories: %w", err)
	}

	return subcategories, nil
}

// CreateSubcategory creates a subcategory under an existing category. An
// active subcategory with the same name under the same category is returned
// as-is rather than duplicated.
func (s *SQLiteStorage) CreateSubcategory(ctx context.Context, name string, categoryID int) (*model.Subcategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	parent, err := s.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("%w: id %d", ErrCategoryMissing, categoryID)
	}

	var existing model.Subcategory
	err = s.db.QueryRowContext(ctx, `
		SELECT id, name, category_id, created_at, is_active
		FROM subcategories
		WHERE category_id = ? AND name = ?`, categoryID, name).Scan(
		&existing.ID, &existing.Name, &existing.CategoryID, &existing.CreatedAt, &existing.IsActive,
	)
	if err == nil {
		if !existing.IsActive {
			if _, err := s.db.ExecContext(ctx, `UPDATE subcategories SET is_active = 1 WHERE id = ?`, existing.ID); err != nil {
				return nil, fmt.Errorf("failed to reactivate subcategory: %w", err)
			}
			existing.IsActive = true
		}
		return &existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing subcategory: %w", err)
	}

	now := time.Now()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO subcategories (name, category_id, created_at, is_active)
		VALUES (?, ?, ?, 1)`, name, categoryID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create subcategory: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get subcategory ID: %w", err)
	}

	subcategory := &model.Subcategory{
		ID:         int(id),
		Name:       name,
		CategoryID: categoryID,
		CreatedAt:  now,
		IsActive:   true,
	}

	slog.Info("created new subcategory", "name", name, "category_id", categoryID, "id", id)
	return subcategory, nil
}
