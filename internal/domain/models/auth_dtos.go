package models

import (
	"time"

	"github.com/ruchelocale/marketplace-api/internal/utils/validator"
)

// RegisterRequest carries the registration payload.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// Validate checks the registration constraints and returns a field-level
// ValidationError listing every violated field.
func (r *RegisterRequest) Validate() error {
	return validator.Validate(r)
}

// LoginRequest carries the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the login constraints.
func (r *LoginRequest) Validate() error {
	return validator.Validate(r)
}

// AuthResult is returned by Register and Login: the public user shape
// plus the freshly issued session token and its absolute expiry.
type AuthResult struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}
