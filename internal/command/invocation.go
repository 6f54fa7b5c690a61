package command

import (
	"context"
	"time"

	"cerebro/pkg/cmd"
	"cerebro/pkg/duration"
	"cerebro/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
)

// API is the part of *discordgo.Session the commands use.
type API interface {
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	ChannelEdit(channelID string, data *discordgo.ChannelEdit, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMembersSearch(guildID, query string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
	GuildMemberDeleteWithReason(guildID, userID, reason string, options ...discordgo.RequestOption) error
	GuildMemberTimeout(guildID, userID string, until *time.Time, options ...discordgo.RequestOption) error
	GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error
	GuildBanDelete(guildID, userID string, options ...discordgo.RequestOption) error
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)

	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
}

// Reply is the body of a response: plain content, an embed, or both.
type Reply struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

// Responder sends the single reply of an invocation and can edit it afterwards.
// Defer acknowledges the invocation ahead of a slow Reply; it is a no-op where
// there is nothing to acknowledge.
type Responder interface {
	Defer(ctx context.Context) error
	Reply(ctx context.Context, r Reply) error
	Edit(ctx context.Context, r Reply) error
}

// WeatherFetcher returns the status code and body of a weather lookup.
type WeatherFetcher interface {
	Fetch(ctx context.Context, location string) (int, string, error)
}

// Data is shared by every invocation and never mutated after startup.
type Data struct {
	StartedAt  time.Time
	Commands   *cmd.Registry
	Prefix     string
	HelpFooter string
	Weather    WeatherFetcher
	Durations  duration.Parser
	Deletes    *retrylimit.AdaptiveLimiter
}

// Invocation is what the runtime passes to a command.
type Invocation struct {
	API       API
	GuildID   string
	ChannelID string
	// ID is the snowflake of the triggering message or interaction.
	ID      string
	Author  *discordgo.User
	Member  *discordgo.Member
	BotID   string
	Options Options

	Responder Responder
	Data      *Data

	// Now defaults to time.Now.
	Now func() time.Time
}

// Defer is called by commands that may outlive the slash acknowledgement window.
func (inv *Invocation) Defer(ctx context.Context) error {
	return inv.Responder.Defer(ctx)
}

func (inv *Invocation) Reply(ctx context.Context, r Reply) error {
	return inv.Responder.Reply(ctx, r)
}

func (inv *Invocation) Edit(ctx context.Context, r Reply) error {
	return inv.Responder.Edit(ctx, r)
}

// ReplyEmbed replies with a single embed in the moderation color.
func (inv *Invocation) ReplyEmbed(ctx context.Context, title, description string) error {
	return inv.Reply(ctx, Reply{Embed: &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       EmbedColor,
	}})
}

func (inv *Invocation) Clock() time.Time {
	if inv.Now != nil {
		return inv.Now()
	}
	return time.Now()
}

// Target returns the member option called name, or the invoking member.
func (inv *Invocation) Target(name string) *discordgo.Member {
	if m, ok := inv.Options.Member(name); ok {
		return m
	}
	if inv.Member != nil {
		if inv.Member.User == nil {
			inv.Member.User = inv.Author
		}
		return inv.Member
	}
	return &discordgo.Member{User: inv.Author}
}
