package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/domain/repository"
)

const productSelect = `
	SELECT p.id, p.title, p.description, p.price, p.original_price, p.currency, p.image,
	       p.status, p.quantity, p.unit, p.tags, p.is_organic, p.is_fresh,
	       p.seller_id, p.shop_id, p.category_id, p.location_id, p.created_at, p.updated_at,
	       c.slug,
	       u.id, u.name, u.rating, u.review_count, u.avatar, COALESCE(l.city, '')
	FROM products p
	JOIN categories c ON c.id = p.category_id
	JOIN users u ON u.id = p.seller_id
	LEFT JOIN locations l ON l.id = u.location_id
`

// ProductRepositoryPostgres implements repository.ProductRepository for PostgreSQL.
type ProductRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewProductRepositoryPostgres creates a new instance of ProductRepositoryPostgres.
func NewProductRepositoryPostgres(pool *pgxpool.Pool) *ProductRepositoryPostgres {
	return &ProductRepositoryPostgres{pool: pool}
}

// Create persists a new product listing.
func (r *ProductRepositoryPostgres) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, title, description, price, original_price, currency, image,
		                      status, quantity, unit, tags, is_organic, is_fresh,
		                      seller_id, shop_id, category_id, location_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Title, product.Description, product.Price, product.OriginalPrice,
		product.Currency, product.Image, product.Status, product.Quantity, product.Unit,
		product.Tags, product.IsOrganic, product.IsFresh,
		product.SellerID, product.ShopID, product.CategoryID, product.LocationID, product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a product with its category slug and seller summary.
func (r *ProductRepositoryPostgres) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := productSelect + ` WHERE p.id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return p, nil
}

// List returns one page of products matching the filters plus the total
// match count.
func (r *ProductRepositoryPostgres) List(ctx context.Context, filters models.ProductFilters) ([]*models.Product, int, error) {
	conditions := []string{"p.status = 'ACTIVE'"}
	args := []interface{}{}
	argCount := 1

	if filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", argCount))
		args = append(args, filters.Category)
		argCount++
	}
	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+filters.Search+"%")
		argCount++
	}
	if filters.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.price >= $%d", argCount))
		args = append(args, *filters.MinPrice)
		argCount++
	}
	if filters.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.price <= $%d", argCount))
		args = append(args, *filters.MaxPrice)
		argCount++
	}
	if filters.IsOrganic != nil {
		conditions = append(conditions, fmt.Sprintf("p.is_organic = $%d", argCount))
		args = append(args, *filters.IsOrganic)
		argCount++
	}
	if filters.IsFresh != nil {
		conditions = append(conditions, fmt.Sprintf("p.is_fresh = $%d", argCount))
		args = append(args, *filters.IsFresh)
		argCount++
	}
	if filters.SellerID != nil {
		conditions = append(conditions, fmt.Sprintf("p.seller_id = $%d", argCount))
		args = append(args, *filters.SellerID)
		argCount++
	}
	if filters.ShopID != nil {
		conditions = append(conditions, fmt.Sprintf("p.shop_id = $%d", argCount))
		args = append(args, *filters.ShopID)
		argCount++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN users u ON u.id = p.seller_id
	` + whereClause

	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []*models.Product
	if totalCount == 0 {
		return products, 0, nil
	}

	query := productSelect + whereClause + " ORDER BY p.created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filters.Limit, (filters.Page-1)*filters.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, errScan := scanProduct(rows)
		if errScan != nil {
			return nil, 0, fmt.Errorf("failed to scan product row: %w", errScan)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, totalCount, nil
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	p := &models.Product{}
	seller := &models.SellerSummary{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.OriginalPrice, &p.Currency, &p.Image,
		&p.Status, &p.Quantity, &p.Unit, &p.Tags, &p.IsOrganic, &p.IsFresh,
		&p.SellerID, &p.ShopID, &p.CategoryID, &p.LocationID, &p.CreatedAt, &p.UpdatedAt,
		&p.CategorySlug,
		&seller.ID, &seller.Name, &seller.Rating, &seller.ReviewCount, &seller.Avatar, &seller.Location,
	)
	if err != nil {
		return nil, err
	}
	p.Seller = seller
	return p, nil
}

var _ repository.ProductRepository = (*ProductRepositoryPostgres)(nil)
