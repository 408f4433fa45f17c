package models

import (
	"time"

	"github.com/google/uuid"
)

// Session represents a server-side authentication session. The bearer
// token is the lookup key; expires_at in the database is the single
// authoritative expiry source (the claim embedded in the token itself is
// informational only, since only the stored value supports revocation).
type Session struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Token     string    `json:"token" db:"token"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Expired reports whether the session's stored expiry has passed.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
