package moderation

import (
	"context"
	"fmt"

	"cerebro/internal/command"
	"cerebro/internal/config"

	"github.com/bwmarrin/discordgo"
)

type KickCommand struct{}

func (c *KickCommand) Name() string           { return "kick" }
func (c *KickCommand) Description() string    { return "Kicks a member" }
func (c *KickCommand) Aliases() []string      { return nil }
func (c *KickCommand) Category() string       { return config.CategoryModeration }
func (c *KickCommand) UserPermissions() int64 { return discordgo.PermissionKickMembers }
func (c *KickCommand) BotPermissions() int64  { return discordgo.PermissionKickMembers }
func (c *KickCommand) GuildOnly() bool        { return true }

func (c *KickCommand) Args() []command.Arg {
	return []command.Arg{memberArg("The member you want to kick"), reasonArg}
}

func (c *KickCommand) Run(ctx context.Context, inv *command.Invocation) error {
	member, ok := inv.Options.Member("member")
	if !ok {
		return &command.ArgError{Arg: "member", Err: command.ErrMissingArgument}
	}
	reason := inv.Options.StringOr("reason", command.DefaultReason)

	if err := inv.API.GuildMemberDeleteWithReason(inv.GuildID, member.User.ID, reason, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to kick %s: %w", member.User.Username, err)
	}

	return inv.ReplyEmbed(ctx, "Member Kicked",
		fmt.Sprintf("Successfully kicked `%s` for `%s`", member.User.Username, reason))
}
