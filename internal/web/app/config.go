package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the web gateway configuration, loaded from the environment.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8081"`

	// Cookie lifetimes should match the auth service token TTLs; a cookie
	// that outlives its token is harmless but misleading.
	AccessCookieTTL  time.Duration `env:"ACCESS_COOKIE_TTL" envDefault:"12h"`
	RefreshCookieTTL time.Duration `env:"REFRESH_COOKIE_TTL" envDefault:"720h"`

	// TrustProxyScheme honours X-Forwarded-Proto when deciding the Secure
	// cookie attribute. Enable only behind a proxy that sets the header.
	TrustProxyScheme bool `env:"TRUST_PROXY_SCHEME" envDefault:"false"`

	Env       string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig parses the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AccessCookieTTL <= 0 || cfg.RefreshCookieTTL <= 0 {
		return Config{}, fmt.Errorf("cookie TTLs must be positive")
	}
	return cfg, nil
}
