// Package storage provides the data persistence layer for the shelfscan application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/catalogflow/shelfscan/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrCategoryMissing = errors.New("category does not exist")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateProduct validates a product before persistence.
func validateProduct(p *model.Product) error {
	if p == nil {
		return fmt.Errorf("%w: product", ErrNilParameter)
	}
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProduct)
	}
	if p.SellerID == "" {
		return fmt.Errorf("%w: missing seller id", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidProduct)
	}
	return nil
}
