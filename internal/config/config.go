package config

import (
	"errors"
	"fmt"
	"time"

	"cerebro/internal/secrets"
	"cerebro/pkg/duration"

	"github.com/caarlos0/env/v11"
)

// TokenKey is the secret holding the bot token.
const TokenKey = "DISCORD_TOKEN"

// ErrMissingSecret is matched by errors.Is for every MissingSecretError.
var ErrMissingSecret = errors.New("missing secret")

// MissingSecretError reports a secret that the store does not have.
type MissingSecretError struct {
	Key string
}

func (e *MissingSecretError) Error() string { return fmt.Sprintf("'%s' was not found", e.Key) }

func (e *MissingSecretError) Is(target error) bool { return target == ErrMissingSecret }

type Config struct {
	DiscordToken string

	Prefix              string        `env:"COMMAND_PREFIX" envDefault:">"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"console"`
	WeatherURL          string        `env:"WEATHER_URL" envDefault:"https://wttr.in"`
	HelpFooter          string        `env:"HELP_FOOTER" envDefault:"Cerebro - moderation and utility commands."`
	StrictDurationUnits bool          `env:"STRICT_DURATION_UNITS" envDefault:"false"`
	CommandTimeout      time.Duration `env:"COMMAND_TIMEOUT" envDefault:"2m"`
	CommandCacheDir     string        `env:"COMMAND_CACHE_DIR" envDefault:"data/commands"`
}

// Settings parses every non-secret setting from environ. Nothing is required.
func Settings(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if cfg.Prefix == "" {
		return nil, errors.New("COMMAND_PREFIX must not be empty")
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be console or json, got %q", cfg.LogFormat)
	}
	if cfg.CommandTimeout <= 0 {
		return nil, fmt.Errorf("COMMAND_TIMEOUT must be positive, got %s", cfg.CommandTimeout)
	}
	return cfg, nil
}

// Load reads the settings and the bot token. A missing token is a
// MissingSecretError.
func Load(store secrets.Store, environ map[string]string) (*Config, error) {
	cfg, err := Settings(environ)
	if err != nil {
		return nil, err
	}

	token, ok := store.Get(TokenKey)
	if !ok {
		return nil, &MissingSecretError{Key: TokenKey}
	}
	cfg.DiscordToken = token
	return cfg, nil
}

// DurationPolicy maps STRICT_DURATION_UNITS to a parser policy.
func (c *Config) DurationPolicy() duration.Policy {
	if c.StrictDurationUnits {
		return duration.Strict
	}
	return duration.Lenient
}
