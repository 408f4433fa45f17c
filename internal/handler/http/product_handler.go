package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/handler/http/middleware"
	"github.com/ruchelocale/marketplace-api/internal/service"
)

// ProductHandler exposes the product catalog.
type ProductHandler struct {
	productService *service.ProductService
	errors         *ErrorMapper
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(productService *service.ProductService, errors *ErrorMapper) *ProductHandler {
	return &ProductHandler{productService: productService, errors: errors}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	filters := models.ProductFilters{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		filters.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		filters.MaxPrice = &v
	}
	if v, err := strconv.ParseBool(c.Query("isOrganic")); err == nil {
		filters.IsOrganic = &v
	}
	if v, err := strconv.ParseBool(c.Query("isFresh")); err == nil {
		filters.IsFresh = &v
	}

	result, err := h.productService.List(c.Request.Context(), filters)
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.errors.Write(c, domainErrors.ErrProductNotFound)
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		h.errors.Write(c, domainErrors.ErrInvalidToken)
		return
	}
	if user.Role != models.UserRoleSeller && user.Role != models.UserRoleAdmin {
		h.errors.Write(c, domainErrors.ErrForbidden)
		return
	}

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Write(c, domainErrors.NewValidationError(
			domainErrors.FieldError{Field: "body", Message: "Invalid JSON body"},
		))
		return
	}

	product, err := h.productService.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}
