package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Techjunky-monk39/CasinoLive/internal/games"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
addr: ":9000"
database_path: casino.db
session_ttl: 1h
starting_balance: 1000
reroll_policy: one-roll
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "casino.db", cfg.DatabasePath)
	assert.Equal(t, Duration(time.Hour), cfg.SessionTTL)
	assert.Equal(t, 1000, cfg.StartingBalance)
	assert.Equal(t, games.RerollOne, cfg.RerollPolicy)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `addr: ":9000"`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 5000, cfg.StartingBalance)
	assert.Equal(t, games.RerollThree, cfg.RerollPolicy)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }},
		{"negative balance", func(c *Config) { c.StartingBalance = -1 }},
		{"bad policy", func(c *Config) { c.RerollPolicy = "forever" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
