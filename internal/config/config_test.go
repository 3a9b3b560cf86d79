package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BreakoutTrader/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "POLYGON_API_KEY", "SCHWAB_BASE_URL",
		"SECRET_NAME", "AWS_REGION", "SQLITE_PATH", "METRICS_ADDR", "HTTPS_PROXY", "TRADER_SYMBOLS", "TRADER_DRY_RUN"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"RGTI", "QBTS"}, cfg.Trading.Symbols)
	assert.Equal(t, 20, cfg.Trading.NeighborhoodSize)
	assert.Equal(t, 0.02, cfg.Trading.Threshold)
	assert.Equal(t, 0.01, cfg.Trading.StopLoss)
	assert.Equal(t, "trailing_with_entry_floor", cfg.Trading.StopMode)
	assert.Equal(t, "@every 30s", cfg.Trading.Tick)
	assert.Equal(t, 4000.0, cfg.Capital.Starting)
	assert.Equal(t, "per_symbol", cfg.Capital.Policy)
	assert.Equal(t, 0.5, cfg.Capital.SymbolFraction)
	assert.Equal(t, 5*time.Minute, cfg.Session.ClearBuffer)
	assert.Equal(t, 5, cfg.Session.HorizonDays)
	assert.Equal(t, "SchwabAPI_Credentials", cfg.Credentials.SecretName)
	assert.Equal(t, "us-east-2", cfg.Credentials.Region)
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
trading:
  symbols: [IONQ]
  neighborhood_size: 12
  stop_mode: trailing
capital:
  policy: global
  starting: 10000
session:
  clear_buffer: 10m
  hours_source: static
`)
	clearEnv(t)
	t.Setenv("TRADER_SYMBOLS", "rgti, qbts ,")
	t.Setenv("TRADER_DRY_RUN", "true")
	t.Setenv("SQLITE_PATH", "/tmp/journal.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"RGTI", "QBTS"}, cfg.Trading.Symbols)
	assert.True(t, cfg.Trading.DryRun)
	assert.Equal(t, 12, cfg.Trading.NeighborhoodSize)
	assert.Equal(t, "trailing", cfg.Trading.StopMode)
	assert.Equal(t, 10*time.Minute, cfg.Session.ClearBuffer)
	assert.Equal(t, 10000.0, cfg.Capital.GlobalLimit)
	assert.Equal(t, "/tmp/journal.db", cfg.Database.SQLitePath)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad stop mode", func(c *Config) { c.Trading.StopMode = "fixed" }},
		{"threshold out of range", func(c *Config) { c.Trading.Threshold = 1.5 }},
		{"bad tick", func(c *Config) { c.Trading.Tick = "every thirty seconds" }},
		{"polygon without key", func(c *Config) { c.Quotes.Source = "polygon" }},
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "x" }},
		{"duplicate symbol", func(c *Config) { c.Trading.Symbols = []string{"RGTI", "RGTI"} }},
		{"bad timezone", func(c *Config) { c.Session.Timezone = "Mars/Olympus" }},
		{"global without limit", func(c *Config) { c.Capital.Policy = "global"; c.Capital.GlobalLimit = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfiguration), "got %v", err)
		})
	}
}

func TestParseSchedule(t *testing.T) {
	s, err := ParseSchedule("@every 30s")
	require.NoError(t, err)
	start := time.Date(2025, 2, 18, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, start.Add(30*time.Second), s.Next(start))

	_, err = ParseSchedule("0 0 0 * * *")
	assert.NoError(t, err)
}
