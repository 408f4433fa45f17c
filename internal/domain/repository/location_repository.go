package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ruchelocale/marketplace-api/internal/domain/models"
)

// LocationRepository persists shared postal locations.
type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
}
