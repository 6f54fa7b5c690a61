package moderation

import (
	"context"
	"fmt"

	"cerebro/internal/command"
	"cerebro/internal/config"

	"github.com/bwmarrin/discordgo"
)

type UnmuteCommand struct{}

func (c *UnmuteCommand) Name() string           { return "unmute" }
func (c *UnmuteCommand) Description() string    { return "Unmute/Remove timeout from a member" }
func (c *UnmuteCommand) Aliases() []string      { return nil }
func (c *UnmuteCommand) Category() string       { return config.CategoryModeration }
func (c *UnmuteCommand) UserPermissions() int64 { return discordgo.PermissionModerateMembers }
func (c *UnmuteCommand) BotPermissions() int64  { return discordgo.PermissionModerateMembers }
func (c *UnmuteCommand) GuildOnly() bool        { return true }

func (c *UnmuteCommand) Args() []command.Arg {
	return []command.Arg{memberArg("The member you want to unmute")}
}

func (c *UnmuteCommand) Run(ctx context.Context, inv *command.Invocation) error {
	member, ok := inv.Options.Member("member")
	if !ok {
		return &command.ArgError{Arg: "member", Err: command.ErrMissingArgument}
	}

	// nil clears the timeout
	if err := inv.API.GuildMemberTimeout(inv.GuildID, member.User.ID, nil, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to unmute %s: %w", member.User.Username, err)
	}

	return inv.ReplyEmbed(ctx, "Member Unmuted", fmt.Sprintf("Successfully unmuted `%s`", member.User.Username))
}
