package utility

import (
	"context"
	"fmt"

	"cerebro/internal/command"
	"cerebro/internal/config"
)

type PingCommand struct{}

func (c *PingCommand) Name() string           { return "ping" }
func (c *PingCommand) Description() string    { return "Show the bot's latency" }
func (c *PingCommand) Aliases() []string      { return nil }
func (c *PingCommand) Category() string       { return config.CategoryUtilities }
func (c *PingCommand) Args() []command.Arg    { return nil }
func (c *PingCommand) UserPermissions() int64 { return 0 }
func (c *PingCommand) BotPermissions() int64  { return 0 }
func (c *PingCommand) GuildOnly() bool        { return false }

// Run measures the round trip of the placeholder reply and edits it in place.
func (c *PingCommand) Run(ctx context.Context, inv *command.Invocation) error {
	start := inv.Clock()
	if err := inv.Reply(ctx, command.Reply{Content: "Calculating ping..."}); err != nil {
		return err
	}
	elapsed := inv.Clock().Sub(start)

	return inv.Edit(ctx, command.Reply{Content: fmt.Sprintf("%d ms", elapsed.Milliseconds())})
}
