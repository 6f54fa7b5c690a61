package config

import (
	"testing"
	"time"

	"cerebro/internal/secrets"
	"cerebro/pkg/duration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(secrets.Map{TokenKey: "abc"}, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.DiscordToken)
	assert.Equal(t, ">", cfg.Prefix)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "https://wttr.in", cfg.WeatherURL)
	assert.Equal(t, 2*time.Minute, cfg.CommandTimeout)
	assert.Equal(t, "data/commands", cfg.CommandCacheDir)
	assert.Equal(t, duration.Lenient, cfg.DurationPolicy())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(secrets.Map{TokenKey: "abc"}, map[string]string{
		"COMMAND_PREFIX":        "!",
		"LOG_FORMAT":            "json",
		"STRICT_DURATION_UNITS": "true",
		"COMMAND_TIMEOUT":       "30s",
	})
	require.NoError(t, err)

	assert.Equal(t, "!", cfg.Prefix)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.CommandTimeout)
	assert.Equal(t, duration.Strict, cfg.DurationPolicy())
}

func TestLoadMissingToken(t *testing.T) {
	_, err := Load(secrets.Map{}, map[string]string{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSecret)
	assert.EqualError(t, err, "'DISCORD_TOKEN' was not found")
}

func TestSettingsValidation(t *testing.T) {
	_, err := Settings(map[string]string{"LOG_FORMAT": "xml"})
	assert.Error(t, err)

	_, err = Settings(map[string]string{"COMMAND_TIMEOUT": "soon"})
	assert.Error(t, err)

	_, err = Settings(map[string]string{"COMMAND_TIMEOUT": "-1s"})
	assert.Error(t, err)
}
