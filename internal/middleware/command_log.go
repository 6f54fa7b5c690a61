package middleware

import (
	"context"
	"time"

	"cerebro/internal/command"
	"cerebro/pkg/cmd"

	"github.com/rs/zerolog/log"
)

// WithCommandLogger logs every execution at debug level. Failures are left
// to the error handler.
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			start := time.Now()
			err := c.Run(ctx, inv)

			ev := log.Debug().
				Str("command", c.Name()).
				Str("invoked_as", inv.Name).
				Dur("took", time.Since(start)).
				Bool("ok", err == nil)
			if di, ok := inv.Data.(*command.Invocation); ok {
				ev = ev.Str("guild", di.GuildID).Str("channel", di.ChannelID)
				if di.Author != nil {
					ev = ev.Str("user", di.Author.Username)
				}
			}
			ev.Msg("command executed")
			return err
		})
	}
}
