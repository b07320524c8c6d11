// Package config loads the application configuration from a YAML file in
// the working directory. Every field has a sensible default; a missing file
// is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flowdeskhq/flowdesk/internal/database"
	"github.com/flowdeskhq/flowdesk/internal/models"
)

// FileName is the config file looked up in the working directory. The
// FLOWDESK_CONFIG environment variable overrides the full path.
const FileName = "flowdesk.yaml"

// Config represents the application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Reminders RemindersConfig `yaml:"reminders"`
	LogFile   string          `yaml:"log_file"`
}

// DatabaseConfig configures the connection provider.
type DatabaseConfig struct {
	// Path of the SQLite file. Empty means flowdesk.db in the working
	// directory.
	Path string `yaml:"path"`
	// BusyTimeoutMS is the SQLite busy timeout in milliseconds.
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`
}

// RemindersConfig configures the reminder scheduler's defaults.
type RemindersConfig struct {
	// DefaultWindowMinutes is the window used for tasks without a
	// per-task override.
	DefaultWindowMinutes int `yaml:"default_window_minutes"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			BusyTimeoutMS: 5000,
		},
		Reminders: RemindersConfig{
			DefaultWindowMinutes: models.DefaultReminderWindowMinutes,
		},
		LogFile: "flowdesk.log",
	}
}

// Load reads the config file, falling back to defaults when it does not
// exist. Fields absent from the file keep their default values.
func Load() (*Config, error) {
	path := os.Getenv("FLOWDESK_CONFIG")
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(wd, FileName)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults backfills zero values left by an explicit-but-partial file.
func (c *Config) applyDefaults() {
	if c.Database.BusyTimeoutMS <= 0 {
		c.Database.BusyTimeoutMS = 5000
	}
	if c.Reminders.DefaultWindowMinutes <= 0 {
		c.Reminders.DefaultWindowMinutes = models.DefaultReminderWindowMinutes
	}
	if c.LogFile == "" {
		c.LogFile = "flowdesk.log"
	}
}

// ResolveDatabase resolves the database section into the connection
// provider's config, deriving the path from the working directory when none
// is set.
func (c *Config) ResolveDatabase() (database.Config, error) {
	if c.Database.Path != "" {
		return database.Config{
			Path:        c.Database.Path,
			BusyTimeout: time.Duration(c.Database.BusyTimeoutMS) * time.Millisecond,
		}, nil
	}

	cfg, err := database.DefaultConfig()
	if err != nil {
		return database.Config{}, err
	}
	cfg.BusyTimeout = time.Duration(c.Database.BusyTimeoutMS) * time.Millisecond
	return cfg, nil
}
