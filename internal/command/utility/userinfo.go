package utility

import (
	"context"
	"fmt"
	"strings"

	"cerebro/internal/command"
	"cerebro/internal/config"
	"cerebro/pkg/util"

	"github.com/bwmarrin/discordgo"
)

type UserinfoCommand struct{}

func (c *UserinfoCommand) Name() string           { return "userinfo" }
func (c *UserinfoCommand) Description() string    { return "Show information about a member" }
func (c *UserinfoCommand) Aliases() []string      { return nil }
func (c *UserinfoCommand) Category() string       { return config.CategoryUtilities }
func (c *UserinfoCommand) UserPermissions() int64 { return 0 }
func (c *UserinfoCommand) BotPermissions() int64  { return 0 }
func (c *UserinfoCommand) GuildOnly() bool        { return true }

func (c *UserinfoCommand) Args() []command.Arg {
	return []command.Arg{
		{Name: "member", Description: "The member you want to know about", Kind: command.Member},
	}
}

func (c *UserinfoCommand) Run(ctx context.Context, inv *command.Invocation) error {
	member := inv.Target("member")
	user := member.User

	roles, err := roleNames(ctx, inv, member)
	if err != nil {
		return err
	}

	created, err := discordgo.SnowflakeTimestamp(user.ID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", user.ID, err)
	}

	nick := member.Nick
	if nick == "" {
		nick = "none"
	}
	roleText := "none"
	if len(roles) > 0 {
		roleText = "`" + strings.Join(roles, "` `") + "`"
	}

	return inv.Reply(ctx, command.Reply{Embed: &discordgo.MessageEmbed{
		Title:     user.Username,
		Color:     command.EmbedColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("256")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: user.ID, Inline: true},
			{Name: "Nickname", Value: nick, Inline: true},
			{Name: "Account created", Value: util.DiscordTimestamp(created, util.LongDateTime)},
			{Name: "Joined server", Value: util.DiscordTimestamp(member.JoinedAt, util.LongDateTime)},
			{Name: "Roles", Value: roleText},
		},
	}})
}

// roleNames resolves the member's role IDs in the order the member lists them.
func roleNames(ctx context.Context, inv *command.Invocation, member *discordgo.Member) ([]string, error) {
	if len(member.Roles) == 0 {
		return nil, nil
	}
	all, err := inv.API.GuildRoles(inv.GuildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}
	byID := make(map[string]string, len(all))
	for _, r := range all {
		byID[r.ID] = r.Name
	}

	names := make([]string, 0, len(member.Roles))
	for _, id := range member.Roles {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}
