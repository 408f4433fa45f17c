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

// LocationRepositoryPostgres implements repository.LocationRepository for PostgreSQL.
type LocationRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewLocationRepositoryPostgres creates a new instance of LocationRepositoryPostgres.
func NewLocationRepositoryPostgres(pool *pgxpool.Pool) *LocationRepositoryPostgres {
	return &LocationRepositoryPostgres{pool: pool}
}

func (r *LocationRepositoryPostgres) Create(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO locations (id, address, city, postal_code, region, country, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		location.ID, location.Address, location.City, location.PostalCode,
		location.Region, location.Country, location.Latitude, location.Longitude,
	)
	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

func (r *LocationRepositoryPostgres) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	query := `
		SELECT id, address, city, postal_code, region, country, latitude, longitude
		FROM locations
		WHERE id = $1
	`
	l := &models.Location{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Address, &l.City, &l.PostalCode, &l.Region, &l.Country, &l.Latitude, &l.Longitude,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get location by ID: %w", err)
	}
	return l, nil
}

var _ repository.LocationRepository = (*LocationRepositoryPostgres)(nil)
