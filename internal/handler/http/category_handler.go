package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruchelocale/marketplace-api/internal/service"
)

// CategoryHandler exposes the category taxonomy.
type CategoryHandler struct {
	categoryService *service.CategoryService
	errors          *ErrorMapper
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService, errors *ErrorMapper) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, errors: errors}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Get handles GET /api/categories/:slug.
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categoryService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}
