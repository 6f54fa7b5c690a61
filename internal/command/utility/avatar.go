package utility

import (
	"context"
	"fmt"

	"cerebro/internal/command"
	"cerebro/internal/config"

	"github.com/bwmarrin/discordgo"
)

type AvatarCommand struct{}

func (c *AvatarCommand) Name() string           { return "avatar" }
func (c *AvatarCommand) Description() string    { return "Show a user's avatar" }
func (c *AvatarCommand) Aliases() []string      { return []string{"av"} }
func (c *AvatarCommand) Category() string       { return config.CategoryUtilities }
func (c *AvatarCommand) UserPermissions() int64 { return 0 }
func (c *AvatarCommand) BotPermissions() int64  { return 0 }
func (c *AvatarCommand) GuildOnly() bool        { return false }

func (c *AvatarCommand) Args() []command.Arg {
	return []command.Arg{
		{Name: "user", Description: "The user whose avatar you want", Kind: command.User},
	}
}

func (c *AvatarCommand) Run(ctx context.Context, inv *command.Invocation) error {
	user, ok := inv.Options.User("user")
	if !ok {
		user = inv.Author
	}

	return inv.Reply(ctx, command.Reply{Embed: &discordgo.MessageEmbed{
		Title:       "Avatar",
		Description: fmt.Sprintf("`%s`'s avatar", user.Username),
		Color:       command.EmbedColor,
		Image:       &discordgo.MessageEmbedImage{URL: user.AvatarURL("1024")},
	}})
}
