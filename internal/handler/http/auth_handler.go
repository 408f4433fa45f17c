package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/handler/http/middleware"
	"github.com/ruchelocale/marketplace-api/internal/service"
)

// AuthHandler exposes registration, login, logout and the current-user
// endpoint.
type AuthHandler struct {
	authService *service.AuthService
	errors      *ErrorMapper
	logger      *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService *service.AuthService, errors *ErrorMapper, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, errors: errors, logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Write(c, domainErrors.NewValidationError(
			domainErrors.FieldError{Field: "body", Message: "Invalid JSON body"},
		))
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Write(c, domainErrors.NewValidationError(
			domainErrors.FieldError{Field: "body", Message: "Invalid JSON body"},
		))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Logout handles POST /api/auth/logout. Requires AuthMiddleware, so the
// token in context is known-valid at this point.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.TokenFromContext(c)
	if !ok {
		h.errors.Write(c, domainErrors.ErrMissingToken)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.errors.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		h.errors.Write(c, domainErrors.ErrInvalidToken)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}
