package moderation

import (
	"context"
	"fmt"
	"math"

	"cerebro/internal/command"
	"cerebro/internal/config"

	"github.com/bwmarrin/discordgo"
)

type SlowmodeCommand struct{}

func (c *SlowmodeCommand) Name() string           { return "slowmode" }
func (c *SlowmodeCommand) Description() string    { return "Sets the slowmode of this channel" }
func (c *SlowmodeCommand) Aliases() []string      { return []string{"sm"} }
func (c *SlowmodeCommand) Category() string       { return config.CategoryModeration }
func (c *SlowmodeCommand) UserPermissions() int64 { return discordgo.PermissionManageMessages }
func (c *SlowmodeCommand) BotPermissions() int64  { return discordgo.PermissionManageMessages }
func (c *SlowmodeCommand) GuildOnly() bool        { return true }

func (c *SlowmodeCommand) Args() []command.Arg {
	return []command.Arg{{
		Name:        "duration",
		Description: "Time between messages, e.g. 30s, 5min, 0s to disable",
		Kind:        command.String,
		Required:    true,
	}}
}

func (c *SlowmodeCommand) Run(ctx context.Context, inv *command.Invocation) error {
	raw, ok := inv.Options.String("duration")
	if !ok {
		return &command.ArgError{Arg: "duration", Err: command.ErrMissingArgument}
	}

	secs, err := inv.Data.Durations.Parse(raw)
	if err != nil {
		return err
	}
	limit := int(min(secs, math.MaxUint16))

	if _, err := inv.API.ChannelEdit(inv.ChannelID, &discordgo.ChannelEdit{RateLimitPerUser: &limit}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to set slowmode: %w", err)
	}

	return inv.Reply(ctx, command.Reply{
		Content: fmt.Sprintf("Successfully added slowmode for `%s` in this channel", raw),
	})
}
