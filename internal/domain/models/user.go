package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole enumerates the marketplace account roles.
type UserRole string

const (
	UserRoleUser   UserRole = "USER"
	UserRoleSeller UserRole = "SELLER"
	UserRoleAdmin  UserRole = "ADMIN"
)

// User represents the user entity in the database. PasswordHash never
// leaves the service layer; API responses go through ToResponse.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Name         string     `json:"name" db:"name"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	Avatar       *string    `json:"avatar,omitempty" db:"avatar"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	Role         UserRole   `json:"role" db:"role"`
	IsVerified   bool       `json:"is_verified" db:"is_verified"`
	Rating       float64    `json:"rating" db:"rating"`
	ReviewCount  int        `json:"review_count" db:"review_count"`
	LocationID   *uuid.UUID `json:"location_id,omitempty" db:"location_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// UserResponse structures the public user data returned by API endpoints.
// The password hash is excluded by construction.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Avatar      *string   `json:"avatar"`
	Role        UserRole  `json:"role"`
	IsVerified  bool      `json:"isVerified"`
	Rating      float64   `json:"rating,omitempty"`
	ReviewCount int       `json:"reviewCount,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToResponse converts a User model to its public API shape.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		Name:        u.Name,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Avatar:      u.Avatar,
		Role:        u.Role,
		IsVerified:  u.IsVerified,
		Rating:      u.Rating,
		ReviewCount: u.ReviewCount,
		CreatedAt:   u.CreatedAt,
	}
}

// SellerSummary is the compact seller view embedded in product listings.
type SellerSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location,omitempty"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	Avatar      *string   `json:"avatar"`
}
