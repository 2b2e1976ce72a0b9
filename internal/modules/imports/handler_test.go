package imports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfpcred/internal/database"
	"rfpcred/internal/domain"
	"rfpcred/internal/middleware"
	"rfpcred/internal/repository"
)

func newUploadRouter(t *testing.T, maxBytes int64) (*gin.Engine, *repository.ImportRequestRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	repo := repository.NewImportRequestRepository(db)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.Use(func(c *gin.Context) {
		c.Set(middleware.ContextAuth, &domain.AuthContext{UserID: "u1", Source: domain.SourceImport})
	})
	NewHandler(NewService(repo, zerolog.Nop()), maxBytes).RegisterRoutes(v1)
	return router, repo
}

func upload(router *gin.Engine, query, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/file?"+query, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestUpload_Accepted(t *testing.T) {
	router, repo := newUploadRouter(t, 1024)

	w := upload(router, "rfp_id=rfp-1&type=supplier_responses&supplier_name=Acme&mode=replace", `{"answers":[1,2]}`)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var body struct {
		Data struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "queued", body.Data.Status)

	stored, err := repo.GetByID(t.Context(), body.Data.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportReplace, stored.Mode)
	assert.Equal(t, "Acme", stored.SupplierName)
	assert.JSONEq(t, `{"answers":[1,2]}`, string(stored.Payload))
}

func TestUpload_Rejections(t *testing.T) {
	router, _ := newUploadRouter(t, 32)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
	}{
		{"missing rfp", "type=structure", `{}`, http.StatusBadRequest},
		{"bad type", "rfp_id=r&type=nope", `{}`, http.StatusBadRequest},
		{"empty body", "rfp_id=r&type=structure", ``, http.StatusBadRequest},
		{"not json", "rfp_id=r&type=structure", `not json`, http.StatusBadRequest},
		{"too large", "rfp_id=r&type=structure", `{"x":"` + strings.Repeat("a", 64) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := upload(router, tt.query, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}
