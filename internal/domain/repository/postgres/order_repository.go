package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/domain/repository"
)

const orderColumns = `id, order_number, buyer_id, seller_id, shop_id, status, delivery_method,
	subtotal, delivery_fee, total, currency, created_at, updated_at`

// OrderRepositoryPostgres implements repository.OrderRepository for PostgreSQL.
type OrderRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewOrderRepositoryPostgres creates a new instance of OrderRepositoryPostgres.
func NewOrderRepositoryPostgres(pool *pgxpool.Pool) *OrderRepositoryPostgres {
	return &OrderRepositoryPostgres{pool: pool}
}

// Create inserts the order and its items and decrements product stock in
// one transaction. Stock rows are guarded so concurrent checkouts cannot
// oversell.
func (r *OrderRepositoryPostgres) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin order creation: %w", err)
	}
	defer tx.Rollback(ctx)

	// Conditional decrement keeps quantity >= 0 without a separate
	// read-then-write race.
	stockUpdate := `
		UPDATE products
		SET quantity = quantity - $1, updated_at = NOW()
		WHERE id = $2 AND quantity >= $1 AND status = 'ACTIVE'
	`
	for _, item := range order.Items {
		result, err := tx.Exec(ctx, stockUpdate, item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to reserve stock: %w", err)
		}
		if result.RowsAffected() == 0 {
			return domainErrors.ErrInsufficientStock
		}
	}

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	orderInsert := `
		INSERT INTO orders (id, order_number, buyer_id, seller_id, shop_id, status, delivery_method,
		                    subtotal, delivery_fee, total, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.Exec(ctx, orderInsert,
		order.ID, order.OrderNumber, order.BuyerID, order.SellerID, order.ShopID,
		order.Status, order.DeliveryMethod, order.Subtotal, order.DeliveryFee,
		order.Total, order.Currency, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemInsert := `
		INSERT INTO order_items (id, order_id, product_id, title, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, item := range order.Items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		if _, err := tx.Exec(ctx, itemInsert,
			item.ID, item.OrderID, item.ProductID, item.Title,
			item.Quantity, item.UnitPrice, item.TotalPrice,
		); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order creation: %w", err)
	}
	return nil
}

// GetByID retrieves an order with its items.
func (r *OrderRepositoryPostgres) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o := &models.Order{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.OrderNumber, &o.BuyerID, &o.SellerID, &o.ShopID, &o.Status, &o.DeliveryMethod,
		&o.Subtotal, &o.DeliveryFee, &o.Total, &o.Currency, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID: %w", err)
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// ListForUser returns one page of the user's orders, as buyer or seller.
func (r *OrderRepositoryPostgres) ListForUser(ctx context.Context, userID uuid.UUID, params models.OrderListParams) ([]*models.Order, int, error) {
	column := "buyer_id"
	if params.Role == "seller" {
		column = "seller_id"
	}

	var totalCount int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM orders WHERE %s = $1`, column)
	if err := r.pool.QueryRow(ctx, countQuery, userID).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []*models.Order
	if totalCount == 0 {
		return orders, 0, nil
	}

	query := fmt.Sprintf(`SELECT `+orderColumns+` FROM orders WHERE %s = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, column)
	rows, err := r.pool.Query(ctx, query, userID, params.Limit, (params.Page-1)*params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		o := &models.Order{}
		errScan := rows.Scan(
			&o.ID, &o.OrderNumber, &o.BuyerID, &o.SellerID, &o.ShopID, &o.Status, &o.DeliveryMethod,
			&o.Subtotal, &o.DeliveryFee, &o.Total, &o.Currency, &o.CreatedAt, &o.UpdatedAt,
		)
		if errScan != nil {
			return nil, 0, fmt.Errorf("failed to scan order row: %w", errScan)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating order rows: %w", err)
	}

	for _, o := range orders {
		items, err := r.loadItems(ctx, o.ID)
		if err != nil {
			return nil, 0, err
		}
		o.Items = items
	}
	return orders, totalCount, nil
}

// UpdateStatus moves an order to a new status.
func (r *OrderRepositoryPostgres) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepositoryPostgres) loadItems(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, title, quantity, unit_price, total_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY title
	`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Title,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item row: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order item rows: %w", err)
	}
	return items, nil
}

var _ repository.OrderRepository = (*OrderRepositoryPostgres)(nil)
