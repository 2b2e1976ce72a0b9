package imports

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"rfpcred/internal/domain"
	"rfpcred/internal/middleware"
	"rfpcred/internal/pkg/response"
)

type Handler struct {
	service  *Service
	maxBytes int64
}

func NewHandler(service *Service, maxBytes int64) *Handler {
	return &Handler{service: service, maxBytes: maxBytes}
}

func (h *Handler) RegisterRoutes(bearer *gin.RouterGroup) {
	bearer.POST("/imports/file", h.Upload)
}

// Upload accepts a JSON file body addressed by query parameters.
// POST /api/v1/imports/file?rfp_id=&type=&mode=&supplier_id=&supplier_name=&version_id=
func (h *Handler) Upload(c *gin.Context) {
	target := domain.ImportTarget{
		RFPID:        c.Query("rfp_id"),
		Type:         domain.ImportType(c.Query("type")),
		Mode:         domain.ImportMode(c.Query("mode")),
		SupplierID:   c.Query("supplier_id"),
		SupplierName: c.Query("supplier_name"),
		VersionID:    c.Query("version_id"),
	}

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Import file is too large")
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Failed to read request body")
		return
	}

	req, err := h.service.Submit(c.Request.Context(), middleware.AuthContextFrom(c), target, payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing access token")
		case errors.Is(err, domain.ErrInvalidImportTarget),
			errors.Is(err, ErrEmptyPayload),
			errors.Is(err, ErrInvalidPayload):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to queue import")
		}
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{
		"id":     req.ID,
		"status": req.Status,
	})
}
