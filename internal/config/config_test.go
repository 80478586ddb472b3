package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adk-labs/platform/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Database: config.Database{Host: "localhost", Port: "5432", User: "adk", Name: "adk"},
		Auth: config.Auth{
			JWTSecret:        "secret",
			TokenPepper:      "pepper",
			AccessTokenTTL:   time.Minute,
			RefreshTokenTTL:  time.Hour,
			ResetTokenTTL:    time.Hour,
			LockoutThreshold: 5,
			LockoutWindow:    time.Minute,
		},
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		cfg := validConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing database host fails", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Host = ""
		assert.ErrorIs(t, cfg.Validate(), config.ErrEmptyDatabaseHost)
	})

	t.Run("missing jwt secret fails", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.JWTSecret = ""
		assert.ErrorIs(t, cfg.Validate(), config.ErrEmptyJWTSecret)
	})

	t.Run("missing token pepper fails", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.TokenPepper = ""
		assert.ErrorIs(t, cfg.Validate(), config.ErrEmptyTokenPepper)
	})

	t.Run("zero lockout threshold fails", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.LockoutThreshold = 0
		assert.ErrorIs(t, cfg.Validate(), config.ErrNonPositiveLockout)
	})

	t.Run("unsafe schema prefix fails", func(t *testing.T) {
		cfg := validConfig()
		cfg.Provisioning.SchemaPrefix = `adk";--`
		assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidSchemaPrefix)
	})

	t.Run("empty schema prefix gets the default", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "adk_tenant_", cfg.Provisioning.SchemaPrefix)
	})
}

func TestDatabaseDSN(t *testing.T) {
	db := config.Database{Host: "db", Port: "5432", User: "adk", Password: "pw", Name: "platform"}

	assert.Equal(t,
		"host=db user=adk password=pw dbname=platform port=5432 sslmode=disable",
		db.DSN(),
	)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
database:
  host: localhost
  port: "5432"
  user: adk
  name: platform
auth:
  jwtSecret: filesecret
  tokenPepper: filepepper
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Run("reads file and keeps defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, "filesecret", cfg.Auth.JWTSecret)
		assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
		assert.Equal(t, 5, cfg.Auth.LockoutThreshold)
		assert.Equal(t, ":8080", cfg.HTTP.Address)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("AUTH_JWT_SECRET", "envsecret")

		cfg, err := config.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "envsecret", cfg.Auth.JWTSecret)
	})

	t.Run("invalid file content fails validation", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("database: {host: ''}"), 0o600))

		_, err := config.LoadConfig(bad)
		assert.Error(t, err)
	})
}
