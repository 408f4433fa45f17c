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

// SessionRepositoryPostgres implements repository.SessionRepository for PostgreSQL.
type SessionRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewSessionRepositoryPostgres creates a new instance of SessionRepositoryPostgres.
func NewSessionRepositoryPostgres(pool *pgxpool.Pool) *SessionRepositoryPostgres {
	return &SessionRepositoryPostgres{pool: pool}
}

// Create persists a new session to the database.
func (r *SessionRepositoryPostgres) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := r.pool.Exec(ctx, query,
		session.ID, session.Token, session.UserID, session.ExpiresAt, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByToken retrieves a session by its bearer token. Expiry is judged by
// the caller against the stored expires_at, never the token contents.
func (r *SessionRepositoryPostgres) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT id, token, user_id, expires_at, created_at
		FROM sessions
		WHERE token = $1
	`
	s := &models.Session{}
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&s.ID, &s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}
	return s, nil
}

// DeleteByToken removes a single session.
func (r *SessionRepositoryPostgres) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token = $1`
	result, err := r.pool.Exec(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrSessionNotFound
	}
	return nil
}

// DeleteAllForUser removes every session owned by the user.
func (r *SessionRepositoryPostgres) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM sessions WHERE user_id = $1`
	result, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return result.RowsAffected(), nil
}

// Replace deletes all of the user's sessions and inserts the new one in a
// single transaction, so two concurrent logins can never leave two live
// sessions behind.
func (r *SessionRepositoryPostgres) Replace(ctx context.Context, session *models.Session) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin session replacement: %w", err)
	}
	defer tx.Rollback(ctx)

	deleted, err := tx.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, session.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete prior sessions: %w", err)
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	insert := `
		INSERT INTO sessions (id, token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, insert,
		session.ID, session.Token, session.UserID, session.ExpiresAt, session.CreatedAt,
	); err != nil {
		return 0, fmt.Errorf("failed to insert replacement session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit session replacement: %w", err)
	}
	return deleted.RowsAffected(), nil
}

// DeleteExpired removes sessions where expires_at is in the past.
func (r *SessionRepositoryPostgres) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at < NOW()`
	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected(), nil
}

var _ repository.SessionRepository = (*SessionRepositoryPostgres)(nil)
