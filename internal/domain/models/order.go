package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ruchelocale/marketplace-api/internal/utils/validator"
)

// OrderStatus enumerates the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions maps each status to its allowed successors.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady},
	OrderStatusReady:     {OrderStatusDelivered},
	OrderStatusDelivered: {OrderStatusCompleted},
}

// CanTransition reports whether an order may move from one status to another.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// DeliveryMethod enumerates how an order reaches the buyer.
type DeliveryMethod string

const (
	DeliveryMethodPickup       DeliveryMethod = "PICKUP"
	DeliveryMethodHomeDelivery DeliveryMethod = "HOME_DELIVERY"
	DeliveryMethodPickupPoint  DeliveryMethod = "PICKUP_POINT"
)

// DeliveryFee returns the flat fee charged for a delivery method.
func (m DeliveryMethod) DeliveryFee() float64 {
	switch m {
	case DeliveryMethodHomeDelivery:
		return 4.90
	case DeliveryMethodPickupPoint:
		return 2.50
	default:
		return 0
	}
}

// Valid reports whether m is a known delivery method.
func (m DeliveryMethod) Valid() bool {
	switch m {
	case DeliveryMethodPickup, DeliveryMethodHomeDelivery, DeliveryMethodPickupPoint:
		return true
	}
	return false
}

// OrderItem is one product line within an order. Unit price is captured
// at order time so later price edits do not rewrite history.
type OrderItem struct {
	ID         uuid.UUID `json:"id" db:"id"`
	OrderID    uuid.UUID `json:"order_id" db:"order_id"`
	ProductID  uuid.UUID `json:"product_id" db:"product_id"`
	Title      string    `json:"title" db:"title"`
	Quantity   int       `json:"quantity" db:"quantity"`
	UnitPrice  float64   `json:"unitPrice" db:"unit_price"`
	TotalPrice float64   `json:"totalPrice" db:"total_price"`
}

// Order represents a buyer's purchase from a single seller.
type Order struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	OrderNumber    string         `json:"orderNumber" db:"order_number"`
	BuyerID        uuid.UUID      `json:"buyer_id" db:"buyer_id"`
	SellerID       uuid.UUID      `json:"seller_id" db:"seller_id"`
	ShopID         *uuid.UUID     `json:"shop_id,omitempty" db:"shop_id"`
	Status         OrderStatus    `json:"status" db:"status"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod" db:"delivery_method"`
	Subtotal       float64        `json:"subtotal" db:"subtotal"`
	DeliveryFee    float64        `json:"deliveryFee" db:"delivery_fee"`
	Total          float64        `json:"total" db:"total"`
	Currency       string         `json:"currency" db:"currency"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`

	Items []*OrderItem `json:"items,omitempty" db:"-"`
}

// CreateOrderItemRequest is one requested line in a new order.
type CreateOrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// CreateOrderRequest carries the buyer's checkout payload.
type CreateOrderRequest struct {
	Items          []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryMethod string                   `json:"deliveryMethod" validate:"required,oneof=PICKUP HOME_DELIVERY PICKUP_POINT"`
}

// Validate checks the checkout constraints.
func (r *CreateOrderRequest) Validate() error {
	return validator.Validate(r)
}

// OrderListParams narrows order listings.
type OrderListParams struct {
	Role  string // "buyer" or "seller"
	Page  int
	Limit int
}

// OrderListResult bundles a page of orders with its pagination.
type OrderListResult struct {
	Orders     []*Order   `json:"orders"`
	Pagination Pagination `json:"pagination"`
}
