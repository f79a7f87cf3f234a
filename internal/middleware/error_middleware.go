package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/abimath/internal/app/models/dto"
	"github.com/yigit/abimath/internal/pkg/apperrors"
	"github.com/yigit/abimath/internal/pkg/auth"
	"github.com/yigit/abimath/internal/pkg/logger"
)

// HandleAPIError writes the response for an error returned by a service
func HandleAPIError(c *gin.Context, err error) {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		abortWithAuthError(c, err)
		return
	}

	var status int
	var fallback string
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status, fallback = http.StatusNotFound, "Resource not found"
	case apperrors.Is(err, apperrors.ErrBadRequest, apperrors.ErrValidationFailed, apperrors.ErrResourceAlreadyExists):
		status, fallback = http.StatusBadRequest, "Bad request"
	case errors.Is(err, apperrors.ErrPersistence):
		status, fallback = http.StatusUnprocessableEntity, "Unprocessable entity"
	default:
		logger.Error().Err(err).Str("requestID", GetRequestID(c)).Msg("Unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(http.StatusInternalServerError, "Internal server error"))
		return
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(status, apperrors.Message(err, fallback)))
}

// NotFound answers unknown routes in the API error format
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Resource not found"))
}

// MethodNotAllowed answers known routes called with an unsupported method
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponse(http.StatusMethodNotAllowed, "Method not allowed"))
}

// Recovery turns a panic into a 500 in the API error format
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().Interface("panic", recovered).Str("requestID", GetRequestID(c)).Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(http.StatusInternalServerError, "Internal server error"))
	})
}
