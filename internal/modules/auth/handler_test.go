package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"rfpcred/internal/domain"
	"rfpcred/internal/middleware"
)

func TestWhoAmI(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		ac       *domain.AuthContext
		wantCode int
		wantBody string
	}{
		{
			name:     "pat identity",
			ac:       &domain.AuthContext{UserID: "u1", OrganizationIDs: []string{"org1", "org2"}, Source: domain.SourcePAT, RawToken: "rfpa_secret"},
			wantCode: http.StatusOK,
			wantBody: `{"success":true,"data":{"user_id":"u1","organization_ids":["org1","org2"],"source":"pat"}}`,
		},
		{
			name:     "import identity without organizations",
			ac:       &domain.AuthContext{UserID: "u1", Source: domain.SourceImport},
			wantCode: http.StatusOK,
			wantBody: `{"success":true,"data":{"user_id":"u1","organization_ids":[],"source":"import"}}`,
		},
		{
			name:     "no identity",
			wantCode: http.StatusUnauthorized,
			wantBody: `{"success":false,"error":{"code":"UNAUTHORIZED","message":"Invalid or missing access token"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			v1 := router.Group("/api/v1")
			v1.Use(func(c *gin.Context) {
				if tt.ac != nil {
					c.Set(middleware.ContextAuth, tt.ac)
				}
			})
			NewHandler().RegisterRoutes(v1)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/whoami", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.NotContains(t, w.Body.String(), "rfpa_secret")
		})
	}
}
