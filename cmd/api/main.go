package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"rfpcred/internal/config"
	"rfpcred/internal/database"
	"rfpcred/internal/middleware"
	"rfpcred/internal/modules/events"
	"rfpcred/internal/modules/importtoken"
	"rfpcred/internal/modules/imports"
	"rfpcred/internal/modules/pat"
	jwtsvc "rfpcred/internal/pkg/jwt"
	"rfpcred/internal/pkg/logger"
	"rfpcred/internal/pkg/metrics"
	"rfpcred/internal/pkg/signer"
	"rfpcred/internal/repository"
	"rfpcred/internal/server"
)

func main() {
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		boot.Fatal().Err(err).Msg("init logger")
	}

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := newApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.AppEnv).Str("pat_scope", a.scope.String()).Msg("http server starting")
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	a.shutdown(shutdownCtx)
	log.Info().Msg("stopped")
}

type app struct {
	srv   *http.Server
	db    *gorm.DB
	hub   *events.Hub
	pats  *pat.Service
	scope pat.ScopePolicy
	log   zerolog.Logger
}

func newApp(cfg *config.Config, log zerolog.Logger) (*app, error) {
	scope, err := pat.ParseScope(cfg.PATScope)
	if err != nil {
		return nil, fmt.Errorf("invalid PAT_SCOPE: %w", err)
	}

	// A missing secret is a startup failure, never a default key.
	sig, err := signer.New(cfg.SigningSecret())
	if err != nil {
		return nil, fmt.Errorf("init import token signer: %w", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	m := metrics.New()
	hub := events.NewHub(log)

	tokenRepo := repository.NewPersonalAccessTokenRepository(db)
	memberRepo := repository.NewMembershipRepository(db)
	importRepo := repository.NewImportRequestRepository(db)

	patService := pat.NewService(tokenRepo, memberRepo,
		pat.WithLogger(log),
		pat.WithMetrics(m),
		pat.WithNotifier(hub),
		pat.WithScope(scope),
		pat.WithUsageBuffer(cfg.PATUsageBuffer),
	)
	codec := importtoken.NewCodec(sig, importtoken.WithTTL(cfg.ImportTokenTTL))

	router := server.NewRouter(server.Deps{
		DB:             db,
		Log:            log,
		Metrics:        m,
		Sessions:       jwtsvc.New(cfg.SessionJWTSecret, 24*time.Hour),
		PATs:           patService,
		Commands:       importtoken.NewCommandBuilder(codec, cfg.AppURL),
		Codec:          codec,
		Imports:        imports.NewService(importRepo, log),
		Hub:            hub,
		Limiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		MaxImportBytes: cfg.MaxImportBytes,
		CORSOrigins:    cfg.CORSAllowedOrigins,
	})

	return &app{
		srv: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		db:    db,
		hub:   hub,
		pats:  patService,
		scope: scope,
		log:   log,
	}, nil
}

func (a *app) shutdown(ctx context.Context) {
	if err := a.srv.Shutdown(ctx); err != nil {
		a.log.Error().Err(err).Msg("http server shutdown")
	}
	a.hub.Close()
	a.pats.Close()

	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
