package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("ALERT_CALIBRATION_DUE_DAYS", "15")
	cfg := New()

	assert.Equal(t, 15, cfg.Alerts.DueWindowDays)
	assert.Equal(t, 365, cfg.Alerts.StaleAfterDays)
	assert.False(t, cfg.Alerts.LegacyStalePrecedence)
	assert.Equal(t, "uploads", cfg.Storage.UploadDir)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("ALERT_CALIBRATION_DUE_DAYS", "30")
	t.Setenv("ALERT_STALE_LEGACY_PRECEDENCE", "true")
	t.Setenv("JWT_ACCESS_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TIMEZONE", "UTC")

	cfg := New()

	assert.Equal(t, 30, cfg.Alerts.DueWindowDays)
	assert.True(t, cfg.Alerts.LegacyStalePrecedence)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, time.UTC, cfg.Server.Timezone)
}

func TestNew_BadValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "many")
	t.Setenv("DB_AUTO_MIGRATE", "perhaps")

	cfg := New()

	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.True(t, cfg.Postgres.AutoMigrate)
}
