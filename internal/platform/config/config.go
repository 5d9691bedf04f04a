// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package config reads the API's settings from the environment with
// caarlos0/env. A .env file in the working directory is applied first when
// present; variables already exported win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the API's runtime configuration.
type Config struct {
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Document store (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath overrides the embedded migrations with a directory on disk.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Read cache (Redis)
	RedisURL string        `env:"REDIS_URL,required"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Fetch retry policy for cached reads
	FetchAttempts int `env:"FETCH_ATTEMPTS" envDefault:"10"`

	// Cryptographic keys for identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Reading sessions housekeeping
	SessionSweepSchedule string        `env:"SESSION_SWEEP_SCHEDULE" envDefault:"@hourly"`
	SessionRetention     time.Duration `env:"SESSION_RETENTION"      envDefault:"720h"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"readmate.app"`
}

// Load fails when a required variable is missing or a value is out of range.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config_dotenv_failed: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config_parse_failed: %w", err)
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) check() error {
	switch {
	case c.FetchAttempts < 1:
		return fmt.Errorf("config: FETCH_ATTEMPTS must be at least 1, got %d", c.FetchAttempts)
	case c.CacheTTL <= 0:
		return fmt.Errorf("config: CACHE_TTL must be positive, got %s", c.CacheTTL)
	case c.SessionRetention < 0:
		return fmt.Errorf("config: SESSION_RETENTION must not be negative, got %s", c.SessionRetention)
	}
	return nil
}

func (c *Config) IsDevelopment() bool { return c.Environment == "development" }

func (c *Config) IsProduction() bool { return c.Environment == "production" }

// OriginSuffix is the domain suffix CORS accepts outside development.
func (c *Config) OriginSuffix() string { return c.AllowedOriginSuffix }
