package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the auth service configuration, loaded from the environment.
type Config struct {
	// TokenSecret signs every issued token. There is no default; the
	// service refuses to start without one.
	TokenSecret    string        `env:"TOKEN_SECRET"`
	TokenAlgorithm string        `env:"TOKEN_ALGORITHM" envDefault:"HS256"`
	AccessTTL      time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"12h"`
	RefreshTTL     time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`

	// DatabaseURL is a full SQLite DSN and wins over DatabaseFile when set.
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseFile string `env:"DATABASE_FILE" envDefault:"duet.db"`

	// MockAuth swaps bearer verification for the fixed test identity.
	// Development only; anywhere else it is fatal at startup.
	MockAuth bool `env:"MOCK_AUTH" envDefault:"false"`

	Env       string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	HTTPAddr             string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	UserPurgeAfter       time.Duration `env:"USER_PURGE_AFTER" envDefault:"720h"`
}

// LoadConfig parses the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that must never reach a running service.
func (c Config) Validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("TOKEN_SECRET is required")
	}
	if c.MockAuth && c.Env != "development" {
		return fmt.Errorf("MOCK_AUTH is only allowed in development, not %q", c.Env)
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	if c.RefreshTTL <= c.AccessTTL {
		return fmt.Errorf("REFRESH_TOKEN_TTL must exceed ACCESS_TOKEN_TTL")
	}
	return nil
}

// DSN returns the SQLite connection string.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", c.DatabaseFile)
}
