package pat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rfpcred/internal/middleware"
	"rfpcred/internal/pkg/response"
	"rfpcred/internal/pkg/validator"
)

type Handler struct {
	service   *Service
	validator *validator.Validator
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes expects a group already behind SessionAuth and RequireOrganization.
func (h *Handler) RegisterRoutes(scoped *gin.RouterGroup) {
	tokens := scoped.Group("/tokens")
	{
		tokens.GET("", h.List)
		tokens.POST("", h.Create)
		tokens.DELETE("/:tokenId", h.Revoke)
	}
}

// List returns the caller's active tokens in the current organization.
// GET /api/v1/tokens
func (h *Handler) List(c *gin.Context) {
	tokens, err := h.service.List(c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.GetString(middleware.ContextOrganizationID),
	)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch tokens")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tokens": tokens})
}

// Create issues a token. The raw value is in this response and nowhere else.
// POST /api/v1/tokens
func (h *Handler) Create(c *gin.Context) {
	var req CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := h.validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	res, err := h.service.Issue(c.Request.Context(), IssueInput{
		UserID:         c.GetString(middleware.ContextUserID),
		OrganizationID: c.GetString(middleware.ContextOrganizationID),
		Name:           req.Name,
		ExpiresInDays:  req.ExpiresInDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidExpiry), errors.Is(err, ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create token")
		}
		return
	}

	c.Header("Cache-Control", "no-store")
	response.Success(c, http.StatusCreated, res)
}

// Revoke permanently disables one of the caller's tokens.
// DELETE /api/v1/tokens/:tokenId
func (h *Handler) Revoke(c *gin.Context) {
	err := h.service.Revoke(c.Request.Context(), c.Param("tokenId"), c.GetString(middleware.ContextUserID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Token not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to revoke token")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"revoked": true})
}
