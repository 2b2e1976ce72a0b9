package database

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"rfpcred/internal/domain"

	_ "modernc.org/sqlite"
)

func Connect(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}

	if IsPostgres(dsn) {
		log.Info().Msg("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Info().Str("dsn", dsn).Msg("using SQLite for local development")

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	// SQLite allows one writer; an in-memory database also lives and dies
	// with its connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.PersonalAccessToken{},
		&domain.UserOrganization{},
		&domain.ImportRequest{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
