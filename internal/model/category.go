package model

import "time"

// Category is a top-level product classification.
type Category struct {
	CreatedAt   time.Time
	Name        string
	Description string
	ID          int
	IsActive    bool
}

// Subcategory is a second-level classification belonging to exactly one category.
type Subcategory struct {
	CreatedAt  time.Time
	Name       string
	ID         int
	CategoryID int
	IsActive   bool
}
