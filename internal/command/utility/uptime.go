package utility

import (
	"context"

	"cerebro/internal/command"
	"cerebro/internal/config"
	"cerebro/pkg/util"
)

type UptimeCommand struct{}

func (c *UptimeCommand) Name() string           { return "uptime" }
func (c *UptimeCommand) Description() string    { return "Show how long the bot has been running" }
func (c *UptimeCommand) Aliases() []string      { return nil }
func (c *UptimeCommand) Category() string       { return config.CategoryUtilities }
func (c *UptimeCommand) Args() []command.Arg    { return nil }
func (c *UptimeCommand) UserPermissions() int64 { return 0 }
func (c *UptimeCommand) BotPermissions() int64  { return 0 }
func (c *UptimeCommand) GuildOnly() bool        { return false }

func (c *UptimeCommand) Run(ctx context.Context, inv *command.Invocation) error {
	elapsed := inv.Clock().Sub(inv.Data.StartedAt)
	return inv.Reply(ctx, command.Reply{Content: util.FormatUptime(elapsed)})
}
