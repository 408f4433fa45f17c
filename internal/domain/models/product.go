package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ruchelocale/marketplace-api/internal/utils/validator"
)

// ProductStatus enumerates the listing lifecycle.
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "DRAFT"
	ProductStatusActive    ProductStatus = "ACTIVE"
	ProductStatusSold      ProductStatus = "SOLD"
	ProductStatusExpired   ProductStatus = "EXPIRED"
	ProductStatusSuspended ProductStatus = "SUSPENDED"
)

// ProductUnit enumerates how a product is sold.
type ProductUnit string

const (
	ProductUnitPiece  ProductUnit = "PIECE"
	ProductUnitKg     ProductUnit = "KG"
	ProductUnitGram   ProductUnit = "GRAM"
	ProductUnitLiter  ProductUnit = "LITER"
	ProductUnitBunch  ProductUnit = "BUNCH"
	ProductUnitBasket ProductUnit = "BASKET"
	ProductUnitBox    ProductUnit = "BOX"
)

// Product represents a marketplace listing.
type Product struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	Title         string        `json:"title" db:"title"`
	Description   string        `json:"description" db:"description"`
	Price         float64       `json:"price" db:"price"`
	OriginalPrice *float64      `json:"original_price,omitempty" db:"original_price"`
	Currency      string        `json:"currency" db:"currency"`
	Image         string        `json:"image" db:"image"`
	Status        ProductStatus `json:"status" db:"status"`
	Quantity      int           `json:"quantity" db:"quantity"`
	Unit          ProductUnit   `json:"unit" db:"unit"`
	Tags          []string      `json:"tags" db:"tags"`
	IsOrganic     bool          `json:"is_organic" db:"is_organic"`
	IsFresh       bool          `json:"is_fresh" db:"is_fresh"`
	SellerID      uuid.UUID     `json:"seller_id" db:"seller_id"`
	ShopID        *uuid.UUID    `json:"shop_id,omitempty" db:"shop_id"`
	CategoryID    uuid.UUID     `json:"category_id" db:"category_id"`
	LocationID    *uuid.UUID    `json:"location_id,omitempty" db:"location_id"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`

	// Joined fields, populated by list/detail queries.
	Seller       *SellerSummary `json:"seller,omitempty" db:"-"`
	CategorySlug string         `json:"category,omitempty" db:"-"`
}

// ProductFilters narrows product listings. Zero values mean "no filter".
type ProductFilters struct {
	Category  string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	IsOrganic *bool
	IsFresh   *bool
	SellerID  *uuid.UUID
	ShopID    *uuid.UUID
	Page      int
	Limit     int
}

// Normalize clamps pagination to sane bounds.
func (f *ProductFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

// Pagination is the page metadata returned alongside listings.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalCount int  `json:"totalCount"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination derives page metadata from a total row count.
func NewPagination(page, limit, totalCount int) Pagination {
	totalPages := (totalCount + limit - 1) / limit
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// CreateProductRequest carries the seller's new-listing payload.
type CreateProductRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" validate:"gt=0"`
	OriginalPrice *float64 `json:"originalPrice"`
	Currency      string   `json:"currency"`
	Image         string   `json:"image"`
	Quantity      int      `json:"quantity" validate:"gte=0"`
	Unit          string   `json:"unit"`
	Tags          []string `json:"tags"`
	IsOrganic     bool     `json:"isOrganic"`
	IsFresh       bool     `json:"isFresh"`
	CategoryID    string   `json:"categoryId" validate:"required,uuid"`
}

// Validate checks the listing constraints.
func (r *CreateProductRequest) Validate() error {
	return validator.Validate(r)
}

// ProductListResult bundles a page of products with its pagination.
type ProductListResult struct {
	Products   []*Product `json:"products"`
	Pagination Pagination `json:"pagination"`
}
