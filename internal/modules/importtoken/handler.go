package importtoken

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rfpcred/internal/domain"
	"rfpcred/internal/middleware"
	"rfpcred/internal/pkg/response"
	"rfpcred/internal/pkg/validator"
)

type Handler struct {
	builder   *CommandBuilder
	validator *validator.Validator
}

func NewHandler(builder *CommandBuilder) *Handler {
	return &Handler{builder: builder, validator: validator.New()}
}

// RegisterRoutes expects a group behind RequireCredential.
func (h *Handler) RegisterRoutes(bearer *gin.RouterGroup) {
	bearer.POST("/import-tokens", h.Create)
}

// Create mints a short-lived import token and returns a curl command using it.
// POST /api/v1/import-tokens
func (h *Handler) Create(c *gin.Context) {
	var req CreateImportTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := h.validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	cmd, err := h.builder.Build(middleware.AuthContextFrom(c), req.Target(), req.FilePath)
	if err != nil {
		switch {
		case errors.Is(err, ErrPATRequired):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "A personal access token is required")
		case errors.Is(err, domain.ErrInvalidImportTarget):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create import token")
		}
		return
	}

	c.Header("Cache-Control", "no-store")
	response.Success(c, http.StatusCreated, cmd)
}
