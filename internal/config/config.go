// Package config loads service configuration from an optional YAML file,
// with environment variables taking precedence over file values.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds everything the process needs at startup.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `yaml:"addr"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is json or text.
	LogFormat string `yaml:"log_format"`
	// DatabaseURL selects the postgres store when set; empty means in-memory.
	DatabaseURL string `yaml:"database_url"`
	// DevSeed inserts a small fixture set at startup for local testing.
	DevSeed bool `yaml:"dev_seed"`
}

func defaults() Config {
	return Config{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load reads the file named by CONFIG_PATH (if set) and applies env overrides:
// ADDR, LOG_LEVEL, LOG_FORMAT, DATABASE_URL, DEV_SEED.
func Load() (Config, error) {
	cfg := defaults()
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("ADDR")); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.LogFormat = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		cfg.DatabaseURL = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("DEV_SEED"))); v != "" {
		cfg.DevSeed = v == "1" || v == "true" || v == "yes"
	}
}
