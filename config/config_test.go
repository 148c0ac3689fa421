package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PROPSHARE_JWT_SECRET", "secret")

	cfg, err := Load(writeConfig(t, "app:\n  env: test\n"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, 8083, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8083", cfg.Addr())
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 72*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 14, cfg.Booking.LastMinuteWindowDays)
	assert.Equal(t, 14, cfg.Booking.CancellationNoticeDays)
	assert.Equal(t, 8, cfg.Jobs.RolloverPoolSize)
	assert.Equal(t, "0 1 * * *", cfg.Jobs.CompleteSchedule)
	assert.Equal(t, "0 2 1 1 *", cfg.Jobs.RolloverSchedule)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
jwt:
  secret: from-file
  ttl: 1h
booking:
  last_minute_window_days: 7
kafka:
  brokers: ["k1:9092", "k2:9092"]
`)
	t.Setenv("PROPSHARE_SERVER_PORT", "9100")
	t.Setenv("PROPSHARE_SMTP_HOST", "smtp.example.com")

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 7, cfg.Booking.LastMinuteWindowDays)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PROPSHARE_JWT_SECRET=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PROPSHARE_JWT_SECRET") })

	cfg, err := Load(writeConfig(t, "app:\n  env: test\n"), dir)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.JWT.Secret)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("PROPSHARE_JWT_SECRET", "")
	_, err := Load(writeConfig(t, "app:\n  env: test\n"), t.TempDir())
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "propshare", SSLMode: "disable"}
	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "host=db user=u password=p dbname=propshare port=5432 sslmode=disable", dsn)

	cfg = DatabaseConfig{URL: "postgres://u:p@db:5432/propshare?sslmode=require", TimeZone: "UTC"}
	dsn, err = cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "dbname='propshare' host='db' password='p' port='5432' sslmode='require' user='u' TimeZone=UTC", dsn)

	cfg = DatabaseConfig{URL: "mysql://nope"}
	_, err = cfg.DSN()
	assert.Error(t, err)
}
