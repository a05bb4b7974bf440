// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"PROFDIR_DB_PATH" envDefault:"./data/profdir.db"`
	PicturesDir   string `env:"PROFDIR_PICTURES_DIR" envDefault:"./data/pictures"`
	RememberFile  string `env:"PROFDIR_REMEMBER_FILE" envDefault:"./data/remember.json"`
	BootstrapFile string `env:"PROFDIR_BOOTSTRAP_FILE"` // Optional flat-file account registry imported on startup
	LogLevel      string `env:"PROFDIR_LOG_LEVEL" envDefault:"info"`
	DoSeed        bool   `env:"PROFDIR_DO_SEED" envDefault:"true"` // Create the default admin account when absent
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SlogLevel maps the configured log level name onto a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown PROFDIR_LOG_LEVEL %q", c.LogLevel)
	}
}
