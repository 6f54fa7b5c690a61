package moderation

import (
	"context"
	"fmt"
	"time"

	"cerebro/internal/command"
	"cerebro/internal/config"
	"cerebro/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const (
	defaultPurgeAmount = 10
	maxPurgeAmount     = 100
)

// deleteRetry retries a single delete on rate limits and server errors only.
var deleteRetry = retrylimit.RetryConfig{
	MaxAttempts:     3,
	InitialDelay:    500 * time.Millisecond,
	MaxDelay:        5 * time.Second,
	RateLimitDelay:  500 * time.Millisecond,
	Multiplier:      2,
	Jitter:          true,
	ErrorClassifier: retrylimit.DefaultClassifier,
	Retryable:       retrylimit.DefaultClassifier,
}

type PurgeCommand struct{}

func (c *PurgeCommand) Name() string           { return "purge" }
func (c *PurgeCommand) Description() string    { return "Deletes recent messages in this channel" }
func (c *PurgeCommand) Aliases() []string      { return []string{"clear"} }
func (c *PurgeCommand) Category() string       { return config.CategoryModeration }
func (c *PurgeCommand) UserPermissions() int64 { return discordgo.PermissionManageMessages }
func (c *PurgeCommand) BotPermissions() int64  { return discordgo.PermissionManageMessages }
func (c *PurgeCommand) GuildOnly() bool        { return true }

func (c *PurgeCommand) Args() []command.Arg {
	lo, hi := 1.0, float64(maxPurgeAmount)
	return []command.Arg{{
		Name:        "amount",
		Description: "The amount of messages to delete (default 10)",
		Kind:        command.Integer,
		Min:         &lo,
		Max:         &hi,
	}}
}

func (c *PurgeCommand) Run(ctx context.Context, inv *command.Invocation) error {
	amount := int64(defaultPurgeAmount)
	if v, ok := inv.Options.Int("amount"); ok {
		amount = max(1, min(v, maxPurgeAmount))
	}

	if err := inv.Defer(ctx); err != nil {
		return err
	}

	messages, err := inv.API.ChannelMessages(inv.ChannelID, int(amount), inv.ID, "", "", discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	deleted := 0
	for _, m := range messages {
		err := retrylimit.WithRetryConfig(ctx, func() error {
			return command.WithStatus(inv.API.ChannelMessageDelete(inv.ChannelID, m.ID, discordgo.WithContext(ctx)))
		}, inv.Data.Deletes, deleteRetry)
		if command.IsNotFound(err) {
			log.Debug().Str("message", m.ID).Msg("message already gone")
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to delete message %s after %d deletions: %w", m.ID, deleted, err)
		}
		deleted++
	}

	return inv.Reply(ctx, command.Reply{
		Content: fmt.Sprintf("Successfully purged `%d` messages from this channel", deleted),
	})
}
