package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "EVENTDESK_"
	envFileKey = "EVENTDESK_ENV_FILE"
	configKey  = "EVENTDESK_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if EVENTDESK_CONFIG is set
//  3. env (prefix EVENTDESK_), including values from a .env file
//
// Variables already present in the process environment win over .env.
func Load(_ context.Context) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	base := New()
	k := koanf.New(".")

	if path := os.Getenv(configKey); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// EVENTDESK_TICKETMASTER_API_KEY -> ticketmaster_api_key (flat keys).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv reads EVENTDESK_ENV_FILE (default ".env") when it exists.
func loadDotEnv() error {
	path := os.Getenv(envFileKey)
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	return nil
}

// Validate checks invariants that defaults alone cannot guarantee.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.TicketmasterTimeoutMS <= 0:
		return fmt.Errorf("%w: ticketmaster_timeout_ms must be positive", ErrInvalidConfig)
	case c.DatabaseMaxOpenConns < 0:
		return fmt.Errorf("%w: database_max_open_conns must not be negative", ErrInvalidConfig)
	case strings.TrimSpace(c.TicketmasterBaseURL) == "":
		return fmt.Errorf("%w: ticketmaster_base_url must not be empty", ErrInvalidConfig)
	}
	return nil
}
