package events

import (
	"github.com/gin-gonic/gin"

	"rfpcred/internal/middleware"
)

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// RegisterRoutes expects a group behind RequireCredential. Browsers cannot
// set headers on upgrade requests, so clients pass ?token=.
func (h *Handler) RegisterRoutes(bearer *gin.RouterGroup) {
	bearer.GET("/ws/tokens", h.Stream)
}

// Stream upgrades to a websocket carrying token.created and token.revoked.
// GET /api/v1/ws/tokens
func (h *Handler) Stream(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		return
	}
	h.hub.ServeWS(conn, userID)
}
