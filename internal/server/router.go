package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"rfpcred/internal/middleware"
	"rfpcred/internal/modules/auth"
	"rfpcred/internal/modules/events"
	"rfpcred/internal/modules/importtoken"
	"rfpcred/internal/modules/imports"
	"rfpcred/internal/modules/pat"
	"rfpcred/internal/pkg/metrics"
	"rfpcred/internal/pkg/response"
)

// Deps is everything the HTTP surface needs. cmd/api and the end-to-end
// tests build it the same way.
type Deps struct {
	DB       *gorm.DB
	Log      zerolog.Logger
	Metrics  *metrics.Metrics
	Sessions middleware.SessionValidator

	PATs     *pat.Service
	Commands *importtoken.CommandBuilder
	Codec    *importtoken.Codec
	Imports  *imports.Service
	Hub      *events.Hub
	Limiter  *middleware.RateLimiter

	MaxImportBytes int64
	CORSOrigins    []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestLogger(d.Log),
		middleware.Instrument(d.Metrics),
		middleware.CORS(d.CORSOrigins),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", readiness(d.DB))
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	var importTokens middleware.TokenValidator
	if d.Codec != nil {
		importTokens = d.Codec
	}
	gate := middleware.NewGate(d.PATs, importTokens, d.Metrics, d.Log)

	v1 := r.Group("/api/v1")
	{
		session := v1.Group("")
		session.Use(middleware.SessionAuth(d.Sessions), middleware.RequireOrganization(d.PATs, d.Log))
		pat.NewHandler(d.PATs).RegisterRoutes(session)

		bearer := v1.Group("")
		if d.Limiter != nil {
			bearer.Use(d.Limiter.Middleware())
		}
		bearer.Use(middleware.RequireCredential(gate))
		auth.NewHandler().RegisterRoutes(bearer)
		importtoken.NewHandler(d.Commands).RegisterRoutes(bearer)
		imports.NewHandler(d.Imports, d.MaxImportBytes).RegisterRoutes(bearer)
		events.NewHandler(d.Hub).RegisterRoutes(bearer)
	}

	return r
}

func readiness(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, "NOT_READY", "Database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
