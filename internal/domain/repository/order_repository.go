package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ruchelocale/marketplace-api/internal/domain/models"
)

// OrderRepository persists orders and their items.
type OrderRepository interface {
	// Create inserts the order and its items and decrements product
	// stock, all in one transaction. Returns ErrInsufficientStock when
	// any product cannot cover its requested quantity.
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID, params models.OrderListParams) ([]*models.Order, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
}
