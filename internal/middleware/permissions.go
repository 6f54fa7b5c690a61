package middleware

import (
	"context"
	"fmt"
	"math/bits"
	"sort"
	"strings"

	"cerebro/internal/command"
	"cerebro/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

var PermissionNames = map[int64]string{
	discordgo.PermissionCreateInstantInvite: "Create Instant Invite",
	discordgo.PermissionKickMembers:         "Kick Members",
	discordgo.PermissionBanMembers:          "Ban Members",
	discordgo.PermissionAdministrator:       "Administrator",
	discordgo.PermissionManageChannels:      "Manage Channels",
	discordgo.PermissionManageGuild:         "Manage Server",
	discordgo.PermissionAddReactions:        "Add Reactions",
	discordgo.PermissionViewAuditLogs:       "View Audit Logs",
	discordgo.PermissionViewChannel:         "View Channel",
	discordgo.PermissionSendMessages:        "Send Messages",
	discordgo.PermissionManageMessages:      "Manage Messages",
	discordgo.PermissionEmbedLinks:          "Embed Links",
	discordgo.PermissionAttachFiles:         "Attach Files",
	discordgo.PermissionReadMessageHistory:  "Read Message History",
	discordgo.PermissionMentionEveryone:     "Mention Everyone",
	discordgo.PermissionUseExternalEmojis:   "Use External Emojis",
	discordgo.PermissionChangeNickname:      "Change Nickname",
	discordgo.PermissionManageNicknames:     "Manage Nicknames",
	discordgo.PermissionManageRoles:         "Manage Roles",
	discordgo.PermissionManageWebhooks:      "Manage Webhooks",
	discordgo.PermissionModerateMembers:     "Moderate Members",
}

// PermissionList renders every bit of perms as "`Kick Members`, `Ban Members`".
func PermissionList(perms int64) string {
	var names []string
	for p := uint64(perms); p != 0; p &= p - 1 {
		bit := int64(1) << bits.TrailingZeros64(p)
		name := PermissionNames[bit]
		if name == "" {
			name = fmt.Sprintf("0x%x", bit)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return "`" + strings.Join(names, "`, `") + "`"
}

// WithUserPermissionCheck requires the invoker to hold every permission the
// command declares. Administrators always pass.
func WithUserPermissionCheck() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			di, meta, ok := unpack(c, inv)
			if !ok || meta.UserPermissions() == 0 || di.GuildID == "" || di.Author == nil {
				return c.Run(ctx, inv)
			}

			perms, err := di.API.UserChannelPermissions(di.Author.ID, di.ChannelID, discordgo.WithContext(ctx))
			if err != nil {
				return fmt.Errorf("failed to get user permissions: %w", err)
			}
			if perms&discordgo.PermissionAdministrator != 0 {
				return c.Run(ctx, inv)
			}

			if missing := meta.UserPermissions() &^ perms; missing != 0 {
				return di.Reply(ctx, command.Reply{Content: fmt.Sprintf(
					"You need the following permissions to run this command:\n%s",
					PermissionList(missing),
				)})
			}
			return c.Run(ctx, inv)
		})
	}
}

// WithBotPermissionCheck requires the bot itself to hold every permission the
// command declares.
func WithBotPermissionCheck() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			di, meta, ok := unpack(c, inv)
			if !ok || meta.BotPermissions() == 0 || di.GuildID == "" || di.BotID == "" {
				return c.Run(ctx, inv)
			}

			perms, err := di.API.UserChannelPermissions(di.BotID, di.ChannelID, discordgo.WithContext(ctx))
			if err != nil {
				return fmt.Errorf("failed to get bot permissions: %w", err)
			}
			if perms&discordgo.PermissionAdministrator != 0 {
				return c.Run(ctx, inv)
			}

			if missing := meta.BotPermissions() &^ perms; missing != 0 {
				return di.Reply(ctx, command.Reply{Content: fmt.Sprintf(
					"I need the following permissions to run this command:\n%s",
					PermissionList(missing),
				)})
			}
			return c.Run(ctx, inv)
		})
	}
}

func unpack(c cmd.Command, inv *cmd.Invocation) (*command.Invocation, command.DiscordMeta, bool) {
	di, ok := inv.Data.(*command.Invocation)
	if !ok {
		return nil, nil, false
	}
	meta, ok := command.Meta(c)
	if !ok {
		return nil, nil, false
	}
	return di, meta, true
}
