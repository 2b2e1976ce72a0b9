package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubMembers map[string]bool

func (s stubMembers) IsMember(_ context.Context, userID, orgID string) (bool, error) {
	if orgID == "broken" {
		return false, errors.New("db down")
	}
	return s[userID+"/"+orgID], nil
}

func orgRouter(userID string) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(ContextUserID, userID)
		}
	})
	router.Use(RequireOrganization(stubMembers{"u1/org1": true}, zerolog.Nop()))
	router.GET("/scoped", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextOrganizationID))
	})
	return router
}

func TestRequireOrganization(t *testing.T) {
	tests := []struct {
		name   string
		user   string
		org    string
		status int
	}{
		{"member", "u1", "org1", http.StatusOK},
		{"not member", "u1", "org2", http.StatusForbidden},
		{"missing header", "u1", "", http.StatusBadRequest},
		{"no user", "", "org1", http.StatusUnauthorized},
		{"storage failure", "u1", "broken", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
			if tt.org != "" {
				req.Header.Set(OrganizationHeader, tt.org)
			}
			orgRouter(tt.user).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "org1", w.Body.String())
			}
		})
	}
}
