package discord

import (
	"fmt"
	"time"

	"cerebro/internal/command"
	"cerebro/internal/command/core"
	"cerebro/internal/command/moderation"
	"cerebro/internal/command/utility"
	"cerebro/internal/middleware"
	"cerebro/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// AllCommands returns every command the bot serves, moderation first.
func AllCommands() []command.Command {
	var all []command.Command
	all = append(all, moderation.Commands()...)
	all = append(all, utility.Commands()...)
	all = append(all, core.Commands()...)
	return all
}

// BuildRegistry registers AllCommands behind the standard middleware chain.
// From the outside in: logging, panic recovery, the per-command timeout, the
// guild-only guard, then the invoker and bot permission checks.
func BuildRegistry(caseInsensitive bool, timeout time.Duration) (*cmd.Registry, error) {
	r := cmd.NewRegistry(caseInsensitive)
	for _, c := range AllCommands() {
		err := command.Register(r, c,
			middleware.WithBotPermissionCheck(),
			middleware.WithUserPermissionCheck(),
			middleware.WithGuildOnly(),
			middleware.WithTimeout(timeout),
			middleware.WithRecover(),
			middleware.WithCommandLogger(),
		)
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", c.Name(), err)
		}
	}
	return r, nil
}

// Definitions returns the slash definitions of every registered command,
// sorted by name.
func Definitions(r *cmd.Registry) []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range r.GetAll() {
		slash, ok := cmd.Root(c).(command.SlashProvider)
		if !ok {
			continue
		}
		if def := slash.SlashDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.ChatApplicationCommand
			}
			defs = append(defs, def)
		}
	}
	return defs
}
