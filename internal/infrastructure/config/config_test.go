package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "erp-backend", cfg.App.Name)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "", cfg.Redis.Host)
		assert.Equal(t, 0.25, cfg.Mining.MinSupport)
		assert.Equal(t, 0.6, cfg.Mining.MinConfidence)
		assert.Equal(t, "0 8 * * *", cfg.Reminder.CronSchedule)
		assert.Equal(t, 200, cfg.Storage.ThumbnailWidth)
		assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	})

	t.Run("loads values from environment variables with ERP prefix", func(t *testing.T) {
		t.Setenv("ERP_APP_NAME", "test-app")
		t.Setenv("ERP_APP_PORT", "9000")
		t.Setenv("ERP_DATABASE_HOST", "testdb.local")
		t.Setenv("ERP_DATABASE_PORT", "5433")
		t.Setenv("ERP_REDIS_HOST", "cache.local")
		t.Setenv("ERP_MINING_MIN_SUPPORT", "0.4")
		t.Setenv("ERP_REMINDER_LEAD_DAYS", "7")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "cache.local:6379", cfg.Redis.Addr())
		assert.Equal(t, 0.4, cfg.Mining.MinSupport)
		assert.Equal(t, 7, cfg.Reminder.LeadDays)
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		t.Setenv("ERP_DATABASE_MAX_OPEN_CONNS", "5")
		t.Setenv("ERP_DATABASE_MAX_IDLE_CONNS", "10")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires a database password", func(t *testing.T) {
		t.Setenv("ERP_APP_ENV", "production")
		t.Setenv("ERP_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})

	t.Run("rejects out of range mining thresholds", func(t *testing.T) {
		t.Setenv("ERP_MINING_MIN_CONFIDENCE", "1.5")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate_Reminder(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Reminder.Enabled = true

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail.host")

	cfg.Mail.Host = "smtp.local"
	cfg.Mail.From = "erp@example.com"
	assert.Error(t, cfg.validate())

	cfg.Reminder.Recipients = []string{"finance@example.com"}
	assert.NoError(t, cfg.validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "erp", Password: "p@ss word", DBName: "erp", SSLMode: "disable"}
	assert.Equal(t, "postgres://erp:p%40ss%20word@db:5432/erp?sslmode=disable", d.DSN())
}
