package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"cerebro/pkg/cmd"

	"github.com/rs/zerolog/log"
)

// WithRecover turns a panic in the command into an error.
func WithRecover() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().Str("command", c.Name()).Bytes("stack", debug.Stack()).Msg("command panicked")
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return c.Run(ctx, inv)
		})
	}
}

// WithTimeout bounds each run by d. Zero disables the bound.
func WithTimeout(d time.Duration) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		if d <= 0 {
			return c
		}
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return c.Run(ctx, inv)
		})
	}
}
