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

// ShopRepositoryPostgres implements repository.ShopRepository for PostgreSQL.
type ShopRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewShopRepositoryPostgres creates a new instance of ShopRepositoryPostgres.
func NewShopRepositoryPostgres(pool *pgxpool.Pool) *ShopRepositoryPostgres {
	return &ShopRepositoryPostgres{pool: pool}
}

// Create inserts the shop, its theme and its customization in one
// transaction so a storefront is never visible half-configured.
func (r *ShopRepositoryPostgres) Create(ctx context.Context, shop *models.Shop) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin shop creation: %w", err)
	}
	defer tx.Rollback(ctx)

	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = time.Now()
	}
	shopInsert := `
		INSERT INTO shops (id, name, slug, description, owner_id, location_id, logo, banner, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(ctx, shopInsert,
		shop.ID, shop.Name, shop.Slug, shop.Description, shop.OwnerID, shop.LocationID,
		shop.Logo, shop.Banner, shop.IsActive, shop.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}

	if shop.Theme != nil {
		themeInsert := `
			INSERT INTO shop_themes (id, shop_id, name, category, colors, fonts, layout, is_custom)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		t := shop.Theme
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		t.ShopID = shop.ID
		if _, err := tx.Exec(ctx, themeInsert,
			t.ID, t.ShopID, t.Name, t.Category, t.Colors, t.Fonts, t.Layout, t.IsCustom,
		); err != nil {
			return fmt.Errorf("failed to create shop theme: %w", err)
		}
	}

	if shop.Customization != nil {
		custInsert := `
			INSERT INTO shop_customizations (shop_id, welcome_message, story, specialties, opening_hours, delivery_info, social_media)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		c := shop.Customization
		if _, err := tx.Exec(ctx, custInsert,
			shop.ID, c.WelcomeMessage, c.Story, c.Specialties, c.OpeningHours, c.DeliveryInfo, c.SocialMedia,
		); err != nil {
			return fmt.Errorf("failed to create shop customization: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit shop creation: %w", err)
	}
	return nil
}

// GetBySlug retrieves a shop with its theme, customization and owner.
func (r *ShopRepositoryPostgres) GetBySlug(ctx context.Context, slug string) (*models.Shop, error) {
	query := `
		SELECT s.id, s.name, s.slug, s.description, s.owner_id, s.location_id, s.logo, s.banner,
		       s.is_active, s.created_at, s.updated_at,
		       u.id, u.name, u.rating, u.review_count, u.avatar, COALESCE(l.city, '')
		FROM shops s
		JOIN users u ON u.id = s.owner_id
		LEFT JOIN locations l ON l.id = s.location_id
		WHERE s.slug = $1
	`
	shop := &models.Shop{}
	owner := &models.SellerSummary{}
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&shop.ID, &shop.Name, &shop.Slug, &shop.Description, &shop.OwnerID, &shop.LocationID,
		&shop.Logo, &shop.Banner, &shop.IsActive, &shop.CreatedAt, &shop.UpdatedAt,
		&owner.ID, &owner.Name, &owner.Rating, &owner.ReviewCount, &owner.Avatar, &owner.Location,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrShopNotFound
		}
		return nil, fmt.Errorf("failed to get shop by slug: %w", err)
	}
	shop.Owner = owner

	theme := &models.ShopTheme{}
	err = r.pool.QueryRow(ctx, `
		SELECT id, shop_id, name, category, colors, fonts, layout, is_custom
		FROM shop_themes
		WHERE shop_id = $1
	`, shop.ID).Scan(
		&theme.ID, &theme.ShopID, &theme.Name, &theme.Category,
		&theme.Colors, &theme.Fonts, &theme.Layout, &theme.IsCustom,
	)
	switch {
	case err == nil:
		shop.Theme = theme
	case errors.Is(err, pgx.ErrNoRows):
		// A shop without a theme renders with storefront defaults.
	default:
		return nil, fmt.Errorf("failed to get shop theme: %w", err)
	}

	cust := &models.ShopCustomization{}
	err = r.pool.QueryRow(ctx, `
		SELECT welcome_message, story, specialties, opening_hours, delivery_info, social_media
		FROM shop_customizations
		WHERE shop_id = $1
	`, shop.ID).Scan(
		&cust.WelcomeMessage, &cust.Story, &cust.Specialties,
		&cust.OpeningHours, &cust.DeliveryInfo, &cust.SocialMedia,
	)
	switch {
	case err == nil:
		shop.Customization = cust
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return nil, fmt.Errorf("failed to get shop customization: %w", err)
	}

	return shop, nil
}

// List returns one page of active shops plus the total count.
func (r *ShopRepositoryPostgres) List(ctx context.Context, page, limit int) ([]*models.Shop, int, error) {
	var totalCount int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM shops WHERE is_active`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count shops: %w", err)
	}

	var shops []*models.Shop
	if totalCount == 0 {
		return shops, 0, nil
	}

	query := `
		SELECT s.id, s.name, s.slug, s.description, s.owner_id, s.location_id, s.logo, s.banner,
		       s.is_active, s.created_at, s.updated_at,
		       u.id, u.name, u.rating, u.review_count, u.avatar, COALESCE(l.city, '')
		FROM shops s
		JOIN users u ON u.id = s.owner_id
		LEFT JOIN locations l ON l.id = s.location_id
		WHERE s.is_active
		ORDER BY s.created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shops: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		shop := &models.Shop{}
		owner := &models.SellerSummary{}
		errScan := rows.Scan(
			&shop.ID, &shop.Name, &shop.Slug, &shop.Description, &shop.OwnerID, &shop.LocationID,
			&shop.Logo, &shop.Banner, &shop.IsActive, &shop.CreatedAt, &shop.UpdatedAt,
			&owner.ID, &owner.Name, &owner.Rating, &owner.ReviewCount, &owner.Avatar, &owner.Location,
		)
		if errScan != nil {
			return nil, 0, fmt.Errorf("failed to scan shop row: %w", errScan)
		}
		shop.Owner = owner
		shops = append(shops, shop)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating shop rows: %w", err)
	}
	return shops, totalCount, nil
}

var _ repository.ShopRepository = (*ShopRepositoryPostgres)(nil)
