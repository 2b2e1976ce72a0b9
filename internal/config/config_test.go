package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":        "file:test.db",
		"SESSION_JWT_SECRET":  "session-secret",
		"IMPORT_TOKEN_SECRET": "import-secret",
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(baseEnv())
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.ImportTokenTTL)
	assert.Equal(t, ScopeMemberships, cfg.PATScope)
	assert.Equal(t, 256, cfg.PATUsageBuffer)
	assert.Equal(t, int64(20*1024*1024), cfg.MaxImportBytes)
	assert.Equal(t, "import-secret", cfg.SigningSecret())
}

func TestLoadFrom_MissingSigningSecretFailsFast(t *testing.T) {
	environ := baseEnv()
	delete(environ, "IMPORT_TOKEN_SECRET")

	_, err := LoadFrom(environ)
	assert.ErrorIs(t, err, ErrMissingSigningSecret)
}

func TestLoadFrom_BlankSigningSecretFailsFast(t *testing.T) {
	environ := baseEnv()
	environ["IMPORT_TOKEN_SECRET"] = "   "

	_, err := LoadFrom(environ)
	assert.ErrorIs(t, err, ErrMissingSigningSecret)
}

func TestLoadFrom_ServiceRoleKeyWins(t *testing.T) {
	environ := baseEnv()
	environ["SERVICE_ROLE_KEY"] = "service-role"

	cfg, err := LoadFrom(environ)
	require.NoError(t, err)
	assert.Equal(t, "service-role", cfg.SigningSecret())
}

func TestLoadFrom_RequiresDatabaseURL(t *testing.T) {
	environ := baseEnv()
	delete(environ, "DATABASE_URL")

	_, err := LoadFrom(environ)
	assert.Error(t, err)
}

func TestLoadFrom_RejectsUnknownScope(t *testing.T) {
	environ := baseEnv()
	environ["PAT_SCOPE"] = "everything"

	_, err := LoadFrom(environ)
	assert.Error(t, err)
}

func TestLoadFrom_MintedScope(t *testing.T) {
	environ := baseEnv()
	environ["PAT_SCOPE"] = " Minted "

	cfg, err := LoadFrom(environ)
	require.NoError(t, err)
	assert.Equal(t, ScopeMinted, cfg.PATScope)
}

func TestLoadFrom_ProdRequiresStrongSecrets(t *testing.T) {
	environ := baseEnv()
	environ["APP_ENV"] = "prod"
	environ["DATABASE_URL"] = "postgres://u:p@localhost:5432/rfp"

	_, err := LoadFrom(environ)
	assert.Error(t, err)

	environ["IMPORT_TOKEN_SECRET"] = "0123456789abcdef0123456789abcdef"
	environ["SESSION_JWT_SECRET"] = "fedcba9876543210fedcba9876543210"
	cfg, err := LoadFrom(environ)
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
}

func TestLoadFrom_ProdRejectsSQLite(t *testing.T) {
	environ := baseEnv()
	environ["APP_ENV"] = "production"
	environ["IMPORT_TOKEN_SECRET"] = "0123456789abcdef0123456789abcdef"
	environ["SESSION_JWT_SECRET"] = "fedcba9876543210fedcba9876543210"

	_, err := LoadFrom(environ)
	assert.Error(t, err)
}

func TestLoadFrom_CORSOrigins(t *testing.T) {
	environ := baseEnv()
	environ["CORS_ALLOWED_ORIGINS"] = "https://app.example.com,https://admin.example.com"

	cfg, err := LoadFrom(environ)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}
