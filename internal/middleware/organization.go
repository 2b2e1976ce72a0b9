package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"rfpcred/internal/pkg/response"
)

const OrganizationHeader = "X-Organization-ID"

type MembershipChecker interface {
	IsMember(ctx context.Context, userID, organizationID string) (bool, error)
}

// RequireOrganization resolves the active organization from the
// X-Organization-ID header and checks the session user belongs to it.
func RequireOrganization(members MembershipChecker, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		if userID == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		orgID := strings.TrimSpace(c.GetHeader(OrganizationHeader))
		if orgID == "" {
			response.Abort(c, http.StatusBadRequest, "ORGANIZATION_REQUIRED", "X-Organization-ID header is required")
			return
		}

		ok, err := members.IsMember(c.Request.Context(), userID, orgID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("organization_id", orgID).Msg("membership check failed")
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check organization membership")
			return
		}
		if !ok {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "You are not a member of this organization")
			return
		}

		c.Set(ContextOrganizationID, orgID)
		c.Next()
	}
}
