package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ruchelocale/marketplace-api/internal/domain/models"
)

// SessionRepository persists bearer sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	// DeleteByToken removes one session; ErrSessionNotFound when absent.
	DeleteByToken(ctx context.Context, token string) error
	// DeleteAllForUser removes every session owned by the user and
	// returns how many rows were deleted.
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// Replace atomically deletes all of the user's sessions and inserts
	// the given one, enforcing the at-most-one-live-session invariant
	// even under concurrent logins. Returns how many sessions were
	// superseded.
	Replace(ctx context.Context, session *models.Session) (int64, error)
	// DeleteExpired removes sessions whose expiry has passed.
	DeleteExpired(ctx context.Context) (int64, error)
}
