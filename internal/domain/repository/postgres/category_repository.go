package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/domain/repository"
)

// CategoryRepositoryPostgres implements repository.CategoryRepository for PostgreSQL.
type CategoryRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewCategoryRepositoryPostgres creates a new instance of CategoryRepositoryPostgres.
func NewCategoryRepositoryPostgres(pool *pgxpool.Pool) *CategoryRepositoryPostgres {
	return &CategoryRepositoryPostgres{pool: pool}
}

func (r *CategoryRepositoryPostgres) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, icon, color, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name, description = EXCLUDED.description,
			icon = EXCLUDED.icon, color = EXCLUDED.color,
			sort_order = EXCLUDED.sort_order, is_active = EXCLUDED.is_active
	`
	_, err := r.pool.Exec(ctx, query,
		category.ID, category.Name, category.Slug, category.Description,
		category.Icon, category.Color, category.SortOrder, category.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert category: %w", err)
	}
	return nil
}

func (r *CategoryRepositoryPostgres) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `
		SELECT id, name, slug, description, icon, color, sort_order, is_active
		FROM categories
		WHERE id = $1
	`
	c := &models.Category{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon, &c.Color, &c.SortOrder, &c.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by ID: %w", err)
	}
	return c, nil
}

func (r *CategoryRepositoryPostgres) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `
		SELECT id, name, slug, description, icon, color, sort_order, is_active
		FROM categories
		WHERE slug = $1
	`
	c := &models.Category{}
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon, &c.Color, &c.SortOrder, &c.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}
	return c, nil
}

func (r *CategoryRepositoryPostgres) ListActive(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT id, name, slug, description, icon, color, sort_order, is_active
		FROM categories
		WHERE is_active
		ORDER BY sort_order, name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon, &c.Color, &c.SortOrder, &c.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

var _ repository.CategoryRepository = (*CategoryRepositoryPostgres)(nil)
