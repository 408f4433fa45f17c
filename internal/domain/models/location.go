package models

import "github.com/google/uuid"

// Location is a postal address with coordinates, shared by users,
// shops and products.
type Location struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Address    string    `json:"address" db:"address"`
	City       string    `json:"city" db:"city"`
	PostalCode string    `json:"postalCode" db:"postal_code"`
	Region     string    `json:"region" db:"region"`
	Country    string    `json:"country" db:"country"`
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
}
