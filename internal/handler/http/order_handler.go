package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/handler/http/middleware"
	"github.com/ruchelocale/marketplace-api/internal/service"
)

// OrderHandler exposes checkout and order tracking. Every route sits
// behind AuthMiddleware.
type OrderHandler struct {
	orderService *service.OrderService
	errors       *ErrorMapper
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orderService *service.OrderService, errors *ErrorMapper) *OrderHandler {
	return &OrderHandler{orderService: orderService, errors: errors}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		h.errors.Write(c, domainErrors.ErrInvalidToken)
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Write(c, domainErrors.NewValidationError(
			domainErrors.FieldError{Field: "body", Message: "Invalid JSON body"},
		))
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// List handles GET /api/orders?role=buyer|seller.
func (h *OrderHandler) List(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		h.errors.Write(c, domainErrors.ErrInvalidToken)
		return
	}

	params := models.OrderListParams{
		Role:  c.DefaultQuery("role", "buyer"),
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	}

	result, err := h.orderService.List(c.Request.Context(), user.ID, params)
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		h.errors.Write(c, domainErrors.ErrInvalidToken)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.errors.Write(c, domainErrors.ErrOrderNotFound)
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		h.errors.Write(c, domainErrors.ErrInvalidToken)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.errors.Write(c, domainErrors.ErrOrderNotFound)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		h.errors.Write(c, domainErrors.NewValidationError(
			domainErrors.FieldError{Field: "status", Message: "Status is required"},
		))
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), user.ID, id, models.OrderStatus(req.Status))
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
