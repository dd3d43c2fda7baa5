// Package config loads server configuration from YAML with sane defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Techjunky-monk39/CasinoLive/internal/games"
)

// Duration accepts YAML values like "1h30m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config is the full server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// DatabasePath is the SQLite file. Empty selects the in-memory store.
	DatabasePath string `yaml:"database_path"`

	// SessionTTL is how long a login lasts.
	SessionTTL Duration `yaml:"session_ttl"`

	// StartingBalance is the credit grant for new registrations.
	StartingBalance int `yaml:"starting_balance"`

	// RerollPolicy bounds rerolls in the three-dice combination game.
	RerollPolicy games.RerollPolicy `yaml:"reroll_policy"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:            ":8080",
		SessionTTL:      Duration(24 * time.Hour),
		StartingBalance: 5000,
		RerollPolicy:    games.RerollThree,
		LogLevel:        "info",
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: addr must not be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: session_ttl must be positive")
	}
	if c.StartingBalance < 0 {
		return fmt.Errorf("config: starting_balance must not be negative")
	}
	if !c.RerollPolicy.Valid() {
		return fmt.Errorf("config: unknown reroll_policy %q", c.RerollPolicy)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}
