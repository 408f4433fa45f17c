package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published by the service.
const (
	TypeUserRegistered = "marketplace.user.registered.v1"
	TypeUserLoggedIn   = "marketplace.user.logged_in.v1"
	TypeOrderCreated   = "marketplace.order.created.v1"
)

// UserRegisteredPayload is the data carried by a user.registered event.
type UserRegisteredPayload struct {
	UserID       uuid.UUID `json:"userId"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// UserLoggedInPayload is the data carried by a user.logged_in event.
type UserLoggedInPayload struct {
	UserID           uuid.UUID `json:"userId"`
	SessionsReplaced int64     `json:"sessionsReplaced"`
	LoggedInAt       time.Time `json:"loggedInAt"`
}

// OrderCreatedPayload is the data carried by an order.created event.
type OrderCreatedPayload struct {
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	BuyerID     uuid.UUID `json:"buyerId"`
	SellerID    uuid.UUID `json:"sellerId"`
	Total       float64   `json:"total"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Publisher emits domain events. Publishing is best-effort: services log
// failures but never fail the originating request over them.
type Publisher interface {
	Publish(ctx context.Context, eventType string, subject string, payload interface{}) error
	Close() error
}

// NoopPublisher discards events. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, eventType string, subject string, payload interface{}) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
