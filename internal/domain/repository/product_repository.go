package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ruchelocale/marketplace-api/internal/domain/models"
)

// ProductRepository persists marketplace listings.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// List returns one page of products matching the filters plus the
	// total match count.
	List(ctx context.Context, filters models.ProductFilters) ([]*models.Product, int, error)
}
