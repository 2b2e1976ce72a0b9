package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger_LogsWithoutQuery(t *testing.T) {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestLogger(zerolog.New(&buf)))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?token=rfpa_secret", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), `"path":"/x"`)
	assert.NotContains(t, buf.String(), "rfpa_secret")
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(zerolog.Nop()))
	router.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "req-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Body.String())
}

func TestRequestLogger_RecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestLogger(zerolog.New(&buf)))
	router.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.Contains(t, buf.String(), "kaboom")
}
