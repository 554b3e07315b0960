package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseURL  string        `envconfig:"DATABASE_URL" required:"true"`
	HTTPAddr     string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	QueryTimeout time.Duration `envconfig:"QUERY_TIMEOUT" default:"5s"`
	Environment  string        `envconfig:"ENVIRONMENT" default:"development"`
}

// New reads .env (if present) and the process environment.
// A missing DATABASE_URL is an error; callers must not proceed without it.
func New() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is not set")
	}
	if cfg.QueryTimeout <= 0 {
		return nil, fmt.Errorf("config: QUERY_TIMEOUT must be positive, got %s", cfg.QueryTimeout)
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
