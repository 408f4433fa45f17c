package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruchelocale/marketplace-api/internal/service"
)

// ShopHandler exposes seller storefronts.
type ShopHandler struct {
	shopService *service.ShopService
	errors      *ErrorMapper
}

// NewShopHandler creates a ShopHandler.
func NewShopHandler(shopService *service.ShopService, errors *ErrorMapper) *ShopHandler {
	return &ShopHandler{shopService: shopService, errors: errors}
}

// List handles GET /api/shops.
func (h *ShopHandler) List(c *gin.Context) {
	result, err := h.shopService.List(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/shops/:slug.
func (h *ShopHandler) Get(c *gin.Context) {
	shop, err := h.shopService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": shop})
}

// Products handles GET /api/shops/:slug/products.
func (h *ShopHandler) Products(c *gin.Context) {
	result, err := h.shopService.Products(c.Request.Context(), c.Param("slug"),
		queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
