// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"sole-and-ankle/service"
)

// Config holds the service settings
type Config struct {
	Env             string
	Port            string
	ThemePath       string
	ChromePath      string
	SnapshotCache   string
	SnapshotTimeout time.Duration
	DetailPrefix    string
}

// IsProduction reports whether ENV is "production"
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address. Listen on 0.0.0.0 to accept connections from all interfaces (Docker).
func (c Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// Load reads the configuration from environment variables, applying defaults
func Load() (Config, error) {
	cfg := Config{
		Env:           os.Getenv("ENV"),
		Port:          os.Getenv("PORT"),
		ThemePath:     os.Getenv("THEME_PATH"),
		ChromePath:    os.Getenv("CHROME_PATH"),
		SnapshotCache: os.Getenv("SNAPSHOT_CACHE_DIR"),
		DetailPrefix:  os.Getenv("DETAIL_PATH_PREFIX"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	// Remove leading colon if present (PORT from some hosts includes it)
	cfg.Port = strings.TrimPrefix(cfg.Port, ":")

	if cfg.SnapshotCache == "" {
		cfg.SnapshotCache = "cache/cards"
	}

	if cfg.DetailPrefix == "" {
		cfg.DetailPrefix = service.DefaultDetailPrefix
	}
	if !strings.HasSuffix(cfg.DetailPrefix, "/") {
		cfg.DetailPrefix += "/"
	}

	cfg.SnapshotTimeout = service.DefaultSnapshotTimeout
	if raw := os.Getenv("SNAPSHOT_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SNAPSHOT_TIMEOUT %q: %w", raw, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("SNAPSHOT_TIMEOUT must be positive, got %s", d)
		}
		cfg.SnapshotTimeout = d
	}

	return cfg, nil
}
