package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	ScopeMemberships = "memberships"
	ScopeMinted      = "minted"

	minProdSecretLen = 32
)

var ErrMissingSigningSecret = errors.New("config: SERVICE_ROLE_KEY or IMPORT_TOKEN_SECRET must be set")

// Config is the process configuration. It is built once at startup and
// handed to constructors explicitly.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"dev"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	AppURL   string `env:"APP_URL" envDefault:"http://localhost:8080"`

	DatabaseURL string `env:"DATABASE_URL,notEmpty"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	SessionJWTSecret string `env:"SESSION_JWT_SECRET,notEmpty"`

	// The import token signing secret. The service role key wins when both are set.
	ServiceRoleKey    string `env:"SERVICE_ROLE_KEY"`
	ImportTokenSecret string `env:"IMPORT_TOKEN_SECRET"`

	ImportTokenTTL time.Duration `env:"IMPORT_TOKEN_TTL" envDefault:"15m"`
	PATScope       string        `env:"PAT_SCOPE" envDefault:"memberships"`
	PATUsageBuffer int           `env:"PAT_USAGE_BUFFER" envDefault:"256"`
	TokenRetention time.Duration `env:"TOKEN_RETENTION" envDefault:"720h"`
	MaxImportBytes int64         `env:"MAX_IMPORT_BYTES" envDefault:"20971520"`

	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"20"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return parse(env.Options{})
}

// LoadFrom builds a Config from the given variables only.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.PATScope = strings.ToLower(strings.TrimSpace(cfg.PATScope))
	cfg.AppURL = strings.TrimRight(strings.TrimSpace(cfg.AppURL), "/")

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SigningSecret returns the import token signing secret.
func (c *Config) SigningSecret() string {
	if s := strings.TrimSpace(c.ServiceRoleKey); s != "" {
		return s
	}
	return strings.TrimSpace(c.ImportTokenSecret)
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.SigningSecret() == "" {
		return ErrMissingSigningSecret
	}
	if cfg.ImportTokenTTL <= 0 {
		return fmt.Errorf("IMPORT_TOKEN_TTL must be > 0")
	}
	if cfg.PATScope != ScopeMemberships && cfg.PATScope != ScopeMinted {
		return fmt.Errorf("PAT_SCOPE must be one of: %s, %s", ScopeMemberships, ScopeMinted)
	}
	if cfg.PATUsageBuffer <= 0 {
		return fmt.Errorf("PAT_USAGE_BUFFER must be > 0")
	}
	if cfg.TokenRetention <= 0 {
		return fmt.Errorf("TOKEN_RETENTION must be > 0")
	}
	if cfg.MaxImportBytes <= 0 {
		return fmt.Errorf("MAX_IMPORT_BYTES must be > 0")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if len(cfg.SigningSecret()) < minProdSecretLen {
			return fmt.Errorf("in prod/release the signing secret must be at least %d bytes", minProdSecretLen)
		}
		if len(strings.TrimSpace(cfg.SessionJWTSecret)) < minProdSecretLen {
			return fmt.Errorf("in prod/release SESSION_JWT_SECRET must be at least %d bytes", minProdSecretLen)
		}
		if strings.HasPrefix(cfg.DatabaseURL, "file:") || !strings.Contains(cfg.DatabaseURL, "://") {
			return fmt.Errorf("in prod/release DATABASE_URL must point at PostgreSQL")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}
