package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store selects the persistence backend
type Store string

const (
	StoreMemory Store = "memory"
	StoreRedis  Store = "redis"
	StoreSQLite Store = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	HTTP    HTTPConfig
	Store   Store `env:"POKESHEET_STORE" envDefault:"memory"`
	Redis   RedisConfig
	SQLite  SQLiteConfig
	Log     LogConfig
	Formula FormulaConfig
}

// HTTPConfig holds API server configuration
type HTTPConfig struct {
	Addr            string        `env:"POKESHEET_HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"POKESHEET_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
}

// SQLiteConfig holds the database file location
type SQLiteConfig struct {
	Path string `env:"POKESHEET_SQLITE_PATH" envDefault:"pokesheet.db"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string `env:"POKESHEET_LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"POKESHEET_LOG_DEV" envDefault:"false"`
}

// FormulaConfig holds evaluator defaults
type FormulaConfig struct {
	// MissingStatValue replaces placeholders that name no stat
	MissingStatValue float64 `env:"POKESHEET_MISSING_STAT_VALUE" envDefault:"9999"`
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()
	return Parse()
}

// Parse builds a Config from the current environment only
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields env tags cannot express
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("POKESHEET_STORE must be one of memory, redis, sqlite; got %q", c.Store)
	}
	if c.Store == StoreRedis && c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required when POKESHEET_STORE=redis")
	}
	if c.Store == StoreSQLite && c.SQLite.Path == "" {
		return fmt.Errorf("POKESHEET_SQLITE_PATH is required when POKESHEET_STORE=sqlite")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("POKESHEET_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
