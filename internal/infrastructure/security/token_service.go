package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService mints session bearer tokens. Tokens are HS256 JWTs whose
// iat/exp claims are informational: session validity is always judged
// against the expiry stored with the server-side session, so revocation
// works and clock claims cannot extend a session's life.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a token service signing with the given secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret must not be empty")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// SessionClaims is the payload minted into each session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// Mint produces a signed token for a user session.
func (s *TokenService) Mint(userID uuid.UUID, sessionID uuid.UUID, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    s.issuer,
			ID:        sessionID.String(),
		},
		UserID: userID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}
