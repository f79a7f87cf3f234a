package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/abimath/internal/app/models/dto"
	"github.com/yigit/abimath/internal/pkg/auth"
	"github.com/yigit/abimath/internal/pkg/logger"
)

const claimsKey = "claims"

// Authorizer authenticates a request header and checks one permission
type Authorizer interface {
	Authorize(ctx context.Context, authHeader, permission string) (*auth.Claims, error)
}

// AuthMiddleware guards routes with verb:resource permissions
type AuthMiddleware struct {
	authorizer Authorizer
}

// NewAuthMiddleware creates a new AuthMiddleware. A nil authorizer disables
// every check.
func NewAuthMiddleware(authorizer Authorizer) *AuthMiddleware {
	return &AuthMiddleware{authorizer: authorizer}
}

// Enabled reports whether requests are checked
func (m *AuthMiddleware) Enabled() bool {
	return m.authorizer != nil
}

// RequirePermission authenticates the bearer token, then requires permission
// in its claims. The verified claims are stored for the handler.
func (m *AuthMiddleware) RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.Enabled() {
			c.Next()
			return
		}

		claims, err := m.authorizer.Authorize(c.Request.Context(), c.GetHeader("Authorization"), permission)
		if err != nil {
			abortWithAuthError(c, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by RequirePermission
func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

func abortWithAuthError(c *gin.Context, err error) {
	var authErr *auth.Error
	if !errors.As(err, &authErr) {
		logger.Error().Err(err).Str("requestID", GetRequestID(c)).Msg("Unexpected authorization failure")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(http.StatusInternalServerError, "Internal server error"))
		return
	}

	logger.Debug().
		Str("requestID", GetRequestID(c)).
		Str("code", authErr.Code).
		Int("status", authErr.Status).
		Msg("Request rejected by auth")
	c.AbortWithStatusJSON(authErr.Status, dto.NewAuthErrorResponse(authErr.Status, authErr.Code, authErr.Description))
}
