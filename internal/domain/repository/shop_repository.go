package repository

import (
	"context"

	"github.com/ruchelocale/marketplace-api/internal/domain/models"
)

// ShopRepository persists seller storefronts and their themes.
type ShopRepository interface {
	// Create inserts the shop, its theme and customization in one
	// transaction.
	Create(ctx context.Context, shop *models.Shop) error
	// GetBySlug returns the shop with its theme, customization and
	// owner summary joined in.
	GetBySlug(ctx context.Context, slug string) (*models.Shop, error)
	List(ctx context.Context, page, limit int) ([]*models.Shop, int, error)
}
