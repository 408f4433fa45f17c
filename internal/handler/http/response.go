package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/ruchelocale/marketplace-api/internal/domain/errors"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string                    `json:"error"`
	Details []domainErrors.FieldError `json:"details,omitempty"`
}

// ErrorMapper translates domain errors into HTTP responses. Internal
// error detail is only exposed in development.
type ErrorMapper struct {
	logger      *zap.Logger
	development bool
}

// NewErrorMapper creates an ErrorMapper.
func NewErrorMapper(logger *zap.Logger, development bool) *ErrorMapper {
	return &ErrorMapper{logger: logger, development: development}
}

// Write renders err with the appropriate status code. Auth failures all
// share the same shape so a caller cannot distinguish unknown email from
// wrong password by anything but the message the two paths share.
func (m *ErrorMapper) Write(c *gin.Context, err error) {
	if ve, ok := domainErrors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Details: ve.Fields,
		})
		return
	}

	switch {
	case domainErrors.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case domainErrors.IsForbidden(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case domainErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case domainErrors.IsConflict(err):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case domainErrors.IsBadRequest(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		m.logger.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		msg := "internal server error"
		if m.development {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msg})
	}
}
