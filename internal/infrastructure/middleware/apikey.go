package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olegk/users-api/internal/pkg/httputil"
)

const AuthTokenHeader = "Auth-Token"

// APIKeyMiddleware gates every route behind a single shared-secret token.
type APIKeyMiddleware struct {
	token string
}

func NewAPIKeyMiddleware(token string) *APIKeyMiddleware {
	return &APIKeyMiddleware{token: token}
}

func (m *APIKeyMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(AuthTokenHeader)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(m.token)) != 1 {
			httputil.AbortError(c, http.StatusUnauthorized, "authorization required")
			return
		}

		c.Next()
	}
}
