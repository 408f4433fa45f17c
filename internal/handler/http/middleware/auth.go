package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/service"
)

const (
	AuthHeaderKey  = "Authorization"
	AuthTypeBearer = "bearer"

	// GinContextUserKey holds the authenticated *models.User.
	GinContextUserKey = "authUser"
	// GinContextTokenKey holds the raw bearer token, needed by logout.
	GinContextTokenKey = "authToken"
)

// ErrorWriter renders a domain error as an HTTP response. Implemented by
// the parent http package; injected here to avoid an import cycle.
type ErrorWriter func(c *gin.Context, err error)

// AuthMiddleware resolves the bearer token to a user via the session
// store and aborts with 401 on any failure.
func AuthMiddleware(authService *service.AuthService, writeError ErrorWriter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearer(c)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}

		c.Set(GinContextUserKey, user)
		c.Set(GinContextTokenKey, token)
		c.Next()
	}
}

func extractBearer(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader == "" {
		return "", domainErrors.ErrMissingToken
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthTypeBearer) || parts[1] == "" {
		return "", domainErrors.ErrMissingToken
	}
	return parts[1], nil
}

// UserFromContext returns the authenticated user set by AuthMiddleware.
func UserFromContext(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(GinContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// TokenFromContext returns the raw bearer token set by AuthMiddleware.
func TokenFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(GinContextTokenKey)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	return token, ok
}
