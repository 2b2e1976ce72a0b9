package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"rfpcred/internal/config"
	"rfpcred/internal/database"
	"rfpcred/internal/pkg/logger"
	"rfpcred/internal/repository"
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

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-cfg.TokenRetention)
	res, err := cleanup(ctx, db, cutoff)
	if err != nil {
		log.Fatal().Err(err).Msg("token cleanup failed")
	}

	log.Info().
		Time("cutoff", cutoff).
		Int64("personal_access_tokens", res.tokens).
		Int64("import_requests", res.importRequests).
		Msg("token cleanup completed")
}

type cleanupResult struct {
	tokens         int64
	importRequests int64
}

func cleanup(ctx context.Context, db *gorm.DB, cutoff time.Time) (cleanupResult, error) {
	var res cleanupResult
	var err error

	res.tokens, err = repository.NewPersonalAccessTokenRepository(db).PurgeInactive(ctx, cutoff)
	if err != nil {
		return res, fmt.Errorf("cleanup personal_access_tokens: %w", err)
	}

	res.importRequests, err = repository.NewImportRequestRepository(db).PurgeBefore(ctx, cutoff)
	if err != nil {
		return res, fmt.Errorf("cleanup import_requests: %w", err)
	}
	return res, nil
}
