package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/clinic")
	t.Setenv("ENV", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("TIME_FORMAT", "")
	t.Setenv("MIGRATIONS_PATH", "")
	t.Setenv("DB_MAX_CONNS", "")
	t.Setenv("TELEGRAM_TOKEN", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "03:04 PM", cfg.TimeFormat)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.False(t, cfg.BotEnabled())
	assert.Equal(t, "postgres://localhost/clinic", cfg.GetDBDSN())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://db/clinic")
	t.Setenv("ENV", "production")
	t.Setenv("TIMEZONE", "Europe/Moscow")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "Europe/Moscow", cfg.Location.String())
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.True(t, cfg.BotEnabled())
}

func TestFromEnvErrors(t *testing.T) {
	t.Setenv("DB_DSN", "")
	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN is required")

	t.Setenv("DB_DSN", "postgres://db/clinic")
	t.Setenv("TIMEZONE", "Mars/Olympus")
	_, err = FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIMEZONE")

	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("DB_MAX_CONNS", "lots")
	_, err = FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MAX_CONNS")
}
