// Package config loads dayplan settings from defaults, an optional YAML
// file and DAYPLAN_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the server and storage settings.
type Config struct {
	Addr     string `yaml:"addr"      env:"DAYPLAN_ADDR"`
	DBDriver string `yaml:"db_driver" env:"DAYPLAN_DB_DRIVER"`
	DBDSN    string `yaml:"db_dsn"    env:"DAYPLAN_DB_DSN"`
	LogLevel string `yaml:"log_level" env:"DAYPLAN_LOG_LEVEL"`
}

// Default returns the built-in settings.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Addr:     ":8080",
		DBDriver: "sqlite",
		DBDSN:    filepath.Join(home, ".dayplan", "dayplan.db"),
		LogLevel: "info",
	}
}

// DefaultPath is the config file read when none is named.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".dayplan", "config.yaml")
}

// Load builds a Config from the file at path, which must exist when
// non-empty. An empty path skips the file.
// The result is not validated so callers can apply flags first.
func Load(path string) (Config, error) {
	return load(path, true)
}

// LoadDefault builds a Config from DefaultPath, ignoring a missing file.
func LoadDefault() (Config, error) {
	return load(DefaultPath(), false)
}

func load(path string, required bool) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !required:
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("db_driver must be sqlite or postgres, got %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("db_dsn must not be empty")
	}
	return nil
}
