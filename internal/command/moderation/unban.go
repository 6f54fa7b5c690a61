package moderation

import (
	"context"
	"fmt"

	"cerebro/internal/command"
	"cerebro/internal/config"

	"github.com/bwmarrin/discordgo"
)

type UnbanCommand struct{}

func (c *UnbanCommand) Name() string           { return "unban" }
func (c *UnbanCommand) Description() string    { return "Unbans a banned user" }
func (c *UnbanCommand) Aliases() []string      { return nil }
func (c *UnbanCommand) Category() string       { return config.CategoryModeration }
func (c *UnbanCommand) UserPermissions() int64 { return discordgo.PermissionBanMembers }
func (c *UnbanCommand) BotPermissions() int64  { return discordgo.PermissionBanMembers }
func (c *UnbanCommand) GuildOnly() bool        { return true }

func (c *UnbanCommand) Args() []command.Arg {
	return []command.Arg{
		{Name: "user", Description: "The user you want to unban", Kind: command.User, Required: true},
	}
}

func (c *UnbanCommand) Run(ctx context.Context, inv *command.Invocation) error {
	user, ok := inv.Options.User("user")
	if !ok {
		return &command.ArgError{Arg: "user", Err: command.ErrMissingArgument}
	}

	if err := inv.API.GuildBanDelete(inv.GuildID, user.ID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to unban %s: %w", user.Username, err)
	}

	return inv.ReplyEmbed(ctx, "Member Unbanned", fmt.Sprintf("Successfully unbanned `%s`", user.Username))
}
