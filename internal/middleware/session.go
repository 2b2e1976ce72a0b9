package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rfpcred/internal/pkg/jwt"
	"rfpcred/internal/pkg/response"
)

type SessionValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

// SessionAuth authenticates browser sessions. It only reads the
// Authorization header; bearer credentials are not sessions.
func SessionAuth(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			return
		}

		claims, err := sessions.ValidateToken(tokenStr)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID())
		c.Next()
	}
}
