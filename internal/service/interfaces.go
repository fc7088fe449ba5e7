// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/catalogflow/shelfscan/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Category operations
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*model.Category, error)
	CreateCategory(ctx context.Context, name, description string) (*model.Category, error)

	// Subcategory operations
	GetSubcategories(ctx context.Context) ([]model.Subcategory, error)
	GetSubcategoriesByCategory(ctx context.Context, categoryID int) ([]model.Subcategory, error)
	CreateSubcategory(ctx context.Context, name string, categoryID int) (*model.Subcategory, error)

	// Product operations
	GetProductsForSeller(ctx context.Context, sellerID string) ([]model.Product, error)
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProductCategory(ctx context.Context, productID string, categoryID, subcategoryID int) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
