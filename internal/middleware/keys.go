package middleware

import (
	"github.com/gin-gonic/gin"

	"rfpcred/internal/domain"
)

// Gin context keys set by the authentication middleware.
const (
	ContextUserID         = "user_id"
	ContextOrganizationID = "organization_id"
	ContextAuth           = "auth_context"
	ContextRequestID      = "request_id"
)

// AuthContextFrom returns the credential identity set by RequireCredential.
func AuthContextFrom(c *gin.Context) *domain.AuthContext {
	v, ok := c.Get(ContextAuth)
	if !ok {
		return nil
	}
	ac, _ := v.(*domain.AuthContext)
	return ac
}
