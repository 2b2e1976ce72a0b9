package importtoken

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfpcred/internal/domain"
	"rfpcred/internal/middleware"
)

func newHandlerRouter(c *Codec, ac *domain.AuthContext) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.Use(func(ctx *gin.Context) {
		if ac != nil {
			ctx.Set(middleware.ContextAuth, ac)
			ctx.Set(middleware.ContextUserID, ac.UserID)
		}
	})
	NewHandler(NewCommandBuilder(c, "https://rfp.example.com")).RegisterRoutes(v1)
	return router
}

func postImportToken(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import-tokens", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateReturnsUsableCommand(t *testing.T) {
	now := issuedAt
	c := newTestCodec(&now)
	ac := &domain.AuthContext{UserID: "u1", OrganizationIDs: []string{"org1"}, Source: domain.SourcePAT}
	router := newHandlerRouter(c, ac)

	w := postImportToken(router, `{"rfp_id":"rfp-1","import_type":"requirements","file_path":"reqs.json"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var body struct {
		Data Command `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://rfp.example.com/api/v1/imports/file?mode=append&rfp_id=rfp-1&type=requirements", body.Data.EndpointURL)
	assert.Contains(t, body.Data.CurlCommand, "'@reqs.json'")
	assert.True(t, body.Data.TokenExpiresAt.Equal(issuedAt.Add(DefaultTTL)))

	start := strings.Index(body.Data.CurlCommand, "Bearer ") + len("Bearer ")
	end := strings.Index(body.Data.CurlCommand[start:], "'")
	p, err := c.Verify(body.Data.CurlCommand[start : start+end])
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, []string{"org1"}, p.OrganizationIDs)
}

func TestHandler_ImportCredentialCannotMint(t *testing.T) {
	now := issuedAt
	ac := &domain.AuthContext{UserID: "u1", Source: domain.SourceImport}
	router := newHandlerRouter(newTestCodec(&now), ac)

	w := postImportToken(router, `{"rfp_id":"rfp-1","import_type":"structure"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_CreateValidation(t *testing.T) {
	now := issuedAt
	ac := &domain.AuthContext{UserID: "u1", Source: domain.SourcePAT}
	router := newHandlerRouter(newTestCodec(&now), ac)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{`},
		{"missing rfp", `{"import_type":"structure"}`},
		{"unknown type", `{"rfp_id":"r","import_type":"pricing"}`},
		{"unknown mode", `{"rfp_id":"r","import_type":"structure","mode":"merge"}`},
		{"supplier without identity", `{"rfp_id":"r","import_type":"supplier_responses"}`},
		{"blank rfp", `{"rfp_id":"   ","import_type":"structure"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postImportToken(router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
