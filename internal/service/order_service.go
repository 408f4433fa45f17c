package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/domain/repository"
	"github.com/ruchelocale/marketplace-api/internal/events"
	"github.com/ruchelocale/marketplace-api/internal/utils/metrics"
)

// OrderService implements checkout and order tracking.
type OrderService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService wires an OrderService.
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Create places an order for the buyer. All items must come from one
// seller; stock is reserved transactionally so concurrent checkouts
// cannot oversell.
func (s *OrderService) Create(ctx context.Context, buyerID uuid.UUID, req models.CreateOrderRequest) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		sellerID uuid.UUID
		shopID   *uuid.UUID
		subtotal float64
		items    []*models.OrderItem
		currency = "EUR"
	)
	for _, line := range req.Items {
		productID := uuid.MustParse(line.ProductID) // validated above
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product.Status != models.ProductStatusActive {
			return nil, domainErrors.ErrProductUnavailable
		}

		if sellerID == uuid.Nil {
			sellerID = product.SellerID
			shopID = product.ShopID
			currency = product.Currency
		} else if sellerID != product.SellerID {
			return nil, domainErrors.ErrMixedSellers
		}

		lineTotal := roundMoney(product.Price * float64(line.Quantity))
		subtotal += lineTotal
		items = append(items, &models.OrderItem{
			ID:         uuid.New(),
			ProductID:  product.ID,
			Title:      product.Title,
			Quantity:   line.Quantity,
			UnitPrice:  product.Price,
			TotalPrice: lineTotal,
		})
	}
	subtotal = roundMoney(subtotal)

	method := models.DeliveryMethod(req.DeliveryMethod)
	fee := method.DeliveryFee()
	now := s.now()
	order := &models.Order{
		ID:             uuid.New(),
		OrderNumber:    newOrderNumber(now),
		BuyerID:        buyerID,
		SellerID:       sellerID,
		ShopID:         shopID,
		Status:         models.OrderStatusPending,
		DeliveryMethod: method,
		Subtotal:       subtotal,
		DeliveryFee:    fee,
		Total:          roundMoney(subtotal + fee),
		Currency:       currency,
		CreatedAt:      now,
		UpdatedAt:      now,
		Items:          items,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.TypeOrderCreated, order.ID.String(), events.OrderCreatedPayload{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			BuyerID:     order.BuyerID,
			SellerID:    order.SellerID,
			Total:       order.Total,
			Currency:    order.Currency,
			CreatedAt:   now,
		}); err != nil {
			s.logger.Warn("failed to publish order event", zap.Error(err))
		}
	}
	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

// Get returns one order, visible only to its buyer or seller.
func (s *OrderService) Get(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != userID && order.SellerID != userID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// List returns one page of the user's orders.
func (s *OrderService) List(ctx context.Context, userID uuid.UUID, params models.OrderListParams) (*models.OrderListResult, error) {
	if params.Role != "seller" {
		params.Role = "buyer"
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}

	orders, totalCount, err := s.orders.ListForUser(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return &models.OrderListResult{
		Orders:     orders,
		Pagination: models.NewPagination(params.Page, params.Limit, totalCount),
	}, nil
}

// UpdateStatus moves an order along its lifecycle. The seller drives the
// fulfillment path; the buyer may only cancel, and only while the order
// is still PENDING or CONFIRMED.
func (s *OrderService) UpdateStatus(ctx context.Context, userID uuid.UUID, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch userID {
	case order.SellerID:
	case order.BuyerID:
		if status != models.OrderStatusCancelled {
			return nil, domainErrors.ErrForbidden
		}
	default:
		return nil, domainErrors.ErrForbidden
	}

	if !order.Status.CanTransition(status) {
		return nil, fmt.Errorf("%s to %s: %w", order.Status, status, domainErrors.ErrInvalidStatusChange)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = s.now()

	s.logger.Info("order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(status)),
	)
	return order, nil
}

// newOrderNumber builds a human-readable order reference like
// ORD-20260828-7F3A2C.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
