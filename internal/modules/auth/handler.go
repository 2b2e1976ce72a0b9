package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rfpcred/internal/middleware"
	"rfpcred/internal/pkg/response"
)

// Handler exposes the identity resolved by the authentication gate.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(bearer *gin.RouterGroup) {
	bearer.GET("/auth/whoami", h.WhoAmI)
}

// WhoAmI echoes the caller's credential identity.
// GET /api/v1/auth/whoami
func (h *Handler) WhoAmI(c *gin.Context) {
	ac := middleware.AuthContextFrom(c)
	if ac == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing access token")
		return
	}

	orgs := ac.OrganizationIDs
	if orgs == nil {
		orgs = []string{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"user_id":          ac.UserID,
		"organization_ids": orgs,
		"source":           ac.Source,
	})
}
