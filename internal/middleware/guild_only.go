package middleware

import (
	"context"

	"cerebro/internal/command"
	"cerebro/pkg/cmd"
)

// WithGuildOnly refuses guild-only commands in direct messages.
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			di, meta, ok := unpack(c, inv)
			if ok && meta.GuildOnly() && di.GuildID == "" {
				return di.Reply(ctx, command.Reply{Content: "This command can only be used in a server."})
			}
			return c.Run(ctx, inv)
		})
	}
}
