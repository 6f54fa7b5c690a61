package command

import (
	"context"
	"fmt"

	"cerebro/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// EmbedColor is used by every moderation reply.
const EmbedColor = 0x3498DB

// DefaultReason is used when a moderator gives no reason.
const DefaultReason = "no reason whatsoever"

// Command is what individual Discord commands implement. The same descriptor
// drives prefix parsing and the slash definition.
type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Category() string
	Args() []Arg
	UserPermissions() int64
	BotPermissions() int64
	GuildOnly() bool
	Run(ctx context.Context, inv *Invocation) error
}

// DiscordMeta is exposed by the adapter so middleware and help can read the
// descriptor without depending on the concrete command type.
type DiscordMeta interface {
	Category() string
	Aliases() []string
	Args() []Arg
	UserPermissions() int64
	BotPermissions() int64
	GuildOnly() bool
}

// SlashProvider is implemented by commands that are registered as slash commands.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// DiscordAdapter adapts a Command to cmd.Command so it can live in the
// universal registry.
type DiscordAdapter struct {
	Cmd Command
}

func (a *DiscordAdapter) Name() string           { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string    { return a.Cmd.Description() }
func (a *DiscordAdapter) Aliases() []string      { return a.Cmd.Aliases() }
func (a *DiscordAdapter) Category() string       { return a.Cmd.Category() }
func (a *DiscordAdapter) Args() []Arg            { return a.Cmd.Args() }
func (a *DiscordAdapter) UserPermissions() int64 { return a.Cmd.UserPermissions() }
func (a *DiscordAdapter) BotPermissions() int64  { return a.Cmd.BotPermissions() }
func (a *DiscordAdapter) GuildOnly() bool        { return a.Cmd.GuildOnly() }

func (a *DiscordAdapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	di, ok := inv.Data.(*Invocation)
	if !ok {
		return fmt.Errorf("command %s: unexpected invocation data %T", a.Cmd.Name(), inv.Data)
	}
	return a.Cmd.Run(ctx, di)
}

func (a *DiscordAdapter) SlashDefinition() *discordgo.ApplicationCommand {
	return SlashDefinition(a.Cmd)
}

// Register adds a Discord command to r with the given middlewares applied.
func Register(r *cmd.Registry, c Command, mws ...cmd.Middleware) error {
	return r.Register(cmd.Apply(&DiscordAdapter{Cmd: c}, mws...))
}

// Meta returns the descriptor behind a registered command, if any.
func Meta(c cmd.Command) (DiscordMeta, bool) {
	m, ok := cmd.Root(c).(DiscordMeta)
	return m, ok
}
