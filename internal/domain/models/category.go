package models

import "github.com/google/uuid"

// Category groups products for browsing and filtering.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	Icon        string    `json:"icon" db:"icon"`
	Color       string    `json:"color" db:"color"`
	SortOrder   int       `json:"order" db:"sort_order"`
	IsActive    bool      `json:"isActive" db:"is_active"`
}
