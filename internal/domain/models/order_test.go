package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusReady, false},
		{OrderStatusConfirmed, OrderStatusPreparing, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusPreparing, OrderStatusCancelled, false},
		{OrderStatusReady, OrderStatusDelivered, true},
		{OrderStatusDelivered, OrderStatusCompleted, true},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestDeliveryFees(t *testing.T) {
	assert.Equal(t, 0.0, DeliveryMethodPickup.DeliveryFee())
	assert.Equal(t, 4.90, DeliveryMethodHomeDelivery.DeliveryFee())
	assert.Equal(t, 2.50, DeliveryMethodPickupPoint.DeliveryFee())

	assert.True(t, DeliveryMethodPickup.Valid())
	assert.False(t, DeliveryMethod("DRONE").Valid())
}

func TestCreateOrderRequestValidate(t *testing.T) {
	err := (&CreateOrderRequest{DeliveryMethod: "DRONE"}).Validate()
	assert.Error(t, err)

	req := &CreateOrderRequest{
		Items:          []CreateOrderItemRequest{{ProductID: "not-a-uuid", Quantity: 0}},
		DeliveryMethod: string(DeliveryMethodPickup),
	}
	assert.Error(t, req.Validate())
}
