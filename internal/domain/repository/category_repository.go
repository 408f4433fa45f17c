package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ruchelocale/marketplace-api/internal/domain/models"
)

// CategoryRepository persists product categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	// ListActive returns active categories ordered by sort order.
	ListActive(ctx context.Context) ([]*models.Category, error)
}
