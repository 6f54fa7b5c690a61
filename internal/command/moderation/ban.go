package moderation

import (
	"context"
	"fmt"

	"cerebro/internal/command"
	"cerebro/internal/config"

	"github.com/bwmarrin/discordgo"
)

const (
	defaultDeleteDays = 7
	maxDeleteDays     = 7
)

type BanCommand struct{}

func (c *BanCommand) Name() string           { return "ban" }
func (c *BanCommand) Description() string    { return "Bans a member" }
func (c *BanCommand) Aliases() []string      { return nil }
func (c *BanCommand) Category() string       { return config.CategoryModeration }
func (c *BanCommand) UserPermissions() int64 { return discordgo.PermissionBanMembers }
func (c *BanCommand) BotPermissions() int64  { return discordgo.PermissionBanMembers }
func (c *BanCommand) GuildOnly() bool        { return true }

// Args puts the optional day count before the reason, so in prefix form a
// leading number in an unquoted reason is taken as the day count.
func (c *BanCommand) Args() []command.Arg {
	lo, hi := 0.0, float64(maxDeleteDays)
	return []command.Arg{
		memberArg("The member you want to ban"),
		{
			Name:        "delete_message_duration",
			Description: "Days of messages to delete, 0-7 (default 7). Quote a reason starting with a number",
			Kind:        command.Integer,
			Min:         &lo,
			Max:         &hi,
		},
		reasonArg,
	}
}

func (c *BanCommand) Run(ctx context.Context, inv *command.Invocation) error {
	member, ok := inv.Options.Member("member")
	if !ok {
		return &command.ArgError{Arg: "member", Err: command.ErrMissingArgument}
	}
	reason := inv.Options.StringOr("reason", command.DefaultReason)

	days := int64(defaultDeleteDays)
	if v, ok := inv.Options.Int("delete_message_duration"); ok {
		days = max(0, min(v, maxDeleteDays))
	}

	if err := inv.API.GuildBanCreateWithReason(inv.GuildID, member.User.ID, reason, int(days), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to ban %s: %w", member.User.Username, err)
	}

	return inv.ReplyEmbed(ctx, "Member Banned",
		fmt.Sprintf("Successfully banned `%s` for `%s`", member.User.Username, reason))
}
