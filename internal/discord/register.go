package discord

import (
	"context"
	"fmt"
	"maps"
	"time"

	"cerebro/internal/command"
	"cerebro/pkg/cmd"
	"cerebro/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type commandAPI interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

var registerRetry = retrylimit.RetryConfig{
	MaxAttempts:    3,
	InitialDelay:   time.Second,
	MaxDelay:       5 * time.Second,
	RateLimitDelay: 2 * time.Second,
	Multiplier:     2,
	Retryable:      retrylimit.DefaultClassifier,
}

// registerCommands overwrites the global slash commands of appID with the
// definitions in r. Nothing is sent when the definitions match the cache.
// It reports whether Discord was called.
func registerCommands(ctx context.Context, api commandAPI, appID string, r *cmd.Registry, cacheDir string) (bool, error) {
	defs := Definitions(r)
	want := hashDefinitions(defs)
	cache := hashCache{dir: cacheDir}

	if maps.Equal(cache.load(), want) {
		log.Info().Int("commands", len(defs)).Msg("slash commands unchanged, registration skipped")
		return false, nil
	}

	err := retrylimit.WithRetryConfig(ctx, func() error {
		_, err := api.ApplicationCommandBulkOverwrite(appID, "", defs, discordgo.WithContext(ctx))
		return command.WithStatus(err)
	}, nil, registerRetry)
	if err != nil {
		return true, fmt.Errorf("register slash commands: %w", err)
	}

	if err := cache.save(want); err != nil {
		log.Warn().Err(err).Msg("failed to save command hash cache")
	}
	log.Info().Int("commands", len(defs)).Msg("slash commands registered globally")
	return true, nil
}
