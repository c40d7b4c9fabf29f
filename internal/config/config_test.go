package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.Equal(t, defaultAllowedOrigins, cfg.AllowedOrigins)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, "fmaa", cfg.ServiceName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(1024*1024), cfg.MaxRequestBodyBytes)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FMAA_PORT", "9000")
	t.Setenv("FMAA_READ_TIMEOUT", "5s")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/fmaa")
	t.Setenv("FMAA_RATE_LIMIT_ENABLED", "true")
	t.Setenv("FMAA_RATE_LIMIT_RATE", "2.5")
	t.Setenv("FMAA_RATE_LIMIT_BURST", "10")
	t.Setenv("FMAA_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, "postgres://u:p@db:5432/fmaa", cfg.DatabaseURL)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 2.5, cfg.RateLimitRate)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("FMAA_PORT", "not-a-number")
	t.Setenv("FMAA_READ_TIMEOUT", "eventually")
	t.Setenv("FMAA_RATE_LIMIT_ENABLED", "o_O")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
	assert.False(t, cfg.RateLimitEnabled)
}

func TestValidateRateLimit(t *testing.T) {
	t.Setenv("FMAA_RATE_LIMIT_ENABLED", "true")
	t.Setenv("FMAA_RATE_LIMIT_RATE", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateMaxBodyBytes(t *testing.T) {
	t.Setenv("FMAA_MAX_REQUEST_BODY_BYTES", "-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestEnvListSkipsEmptyEntries(t *testing.T) {
	t.Setenv("FMAA_ALLOWED_ORIGINS", " , https://a.example ,, ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example"}, cfg.AllowedOrigins)
}
