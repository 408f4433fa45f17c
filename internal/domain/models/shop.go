package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ThemeCategory enumerates the built-in shop theme families.
type ThemeCategory string

const (
	ThemeCategoryNature     ThemeCategory = "NATURE"
	ThemeCategoryModern     ThemeCategory = "MODERN"
	ThemeCategoryRustic     ThemeCategory = "RUSTIC"
	ThemeCategoryElegant    ThemeCategory = "ELEGANT"
	ThemeCategoryColorful   ThemeCategory = "COLORFUL"
	ThemeCategoryMinimalist ThemeCategory = "MINIMALIST"
)

// ShopTheme is the presentation configuration attached to a shop.
// Colors, fonts and layout are opaque JSON documents: the backend stores
// and serves them, the storefront interprets them.
type ShopTheme struct {
	ID       uuid.UUID       `json:"id" db:"id"`
	ShopID   uuid.UUID       `json:"shop_id" db:"shop_id"`
	Name     string          `json:"name" db:"name"`
	Category ThemeCategory   `json:"category" db:"category"`
	Colors   json.RawMessage `json:"colors" db:"colors"`
	Fonts    json.RawMessage `json:"fonts" db:"fonts"`
	Layout   json.RawMessage `json:"layout" db:"layout"`
	IsCustom bool            `json:"isCustom" db:"is_custom"`
}

// ShopCustomization is the seller-authored storefront content, stored as
// JSON documents for the same reason as the theme.
type ShopCustomization struct {
	WelcomeMessage string          `json:"welcomeMessage,omitempty" db:"welcome_message"`
	Story          string          `json:"story,omitempty" db:"story"`
	Specialties    []string        `json:"specialties" db:"specialties"`
	OpeningHours   json.RawMessage `json:"openingHours,omitempty" db:"opening_hours"`
	DeliveryInfo   json.RawMessage `json:"deliveryInfo,omitempty" db:"delivery_info"`
	SocialMedia    json.RawMessage `json:"socialMedia,omitempty" db:"social_media"`
}

// Shop is a seller's storefront.
type Shop struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Slug        string     `json:"slug" db:"slug"`
	Description string     `json:"description" db:"description"`
	OwnerID     uuid.UUID  `json:"owner_id" db:"owner_id"`
	LocationID  *uuid.UUID `json:"location_id,omitempty" db:"location_id"`
	Logo        *string    `json:"logo,omitempty" db:"logo"`
	Banner      *string    `json:"banner,omitempty" db:"banner"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	// Joined fields, populated by detail queries.
	Theme         *ShopTheme         `json:"theme,omitempty" db:"-"`
	Customization *ShopCustomization `json:"customization,omitempty" db:"-"`
	Owner         *SellerSummary     `json:"owner,omitempty" db:"-"`
}

// ShopListResult bundles a page of shops with its pagination.
type ShopListResult struct {
	Shops      []*Shop    `json:"shops"`
	Pagination Pagination `json:"pagination"`
}
