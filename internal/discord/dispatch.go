package discord

import (
	"context"
	"strings"
	"unicode"

	"cerebro/internal/command"
	"cerebro/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Session is the part of *discordgo.Session the dispatcher needs.
type Session interface {
	command.API
	messageAPI
	interactionAPI
}

// dispatcher turns Discord events into command runs.
type dispatcher struct {
	opts Options
	data *command.Data
	api  Session
}

func newDispatcher(opts Options, data *command.Data, api Session) *dispatcher {
	return &dispatcher{opts: opts.withDefaults(), data: data, api: api}
}

// splitCommand cuts content into the command name and its raw arguments.
// ok is false when content does not start with prefix or names no command.
func splitCommand(prefix string, fold bool, content string) (name, rest string, ok bool) {
	if len(content) < len(prefix) {
		return "", "", false
	}
	head, body := content[:len(prefix)], content[len(prefix):]
	if head != prefix && !(fold && strings.EqualFold(head, prefix)) {
		return "", "", false
	}

	if i := strings.IndexFunc(body, unicode.IsSpace); i >= 0 {
		name, rest = body[:i], strings.TrimSpace(body[i:])
	} else {
		name = body
	}
	return name, rest, name != ""
}

func (d *dispatcher) handleMessage(ctx context.Context, botID string, m *discordgo.Message) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	name, rest, ok := splitCommand(d.opts.Prefix, d.opts.CaseInsensitive, m.Content)
	if !ok {
		return
	}
	c := d.opts.Commands.Get(name)
	if c == nil {
		return
	}
	meta, ok := command.Meta(c)
	if !ok {
		log.Warn().Str("command", c.Name()).Msg("registered command has no discord descriptor")
		return
	}

	inv := &command.Invocation{
		API:       d.api,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		ID:        m.ID,
		Author:    m.Author,
		BotID:     botID,
		Options:   command.Options{},
		Responder: &messageResponder{api: d.api, channelID: m.ChannelID},
		Data:      d.data,
	}
	if m.Member != nil {
		member := *m.Member
		member.User = m.Author
		member.GuildID = m.GuildID
		inv.Member = &member
	}

	// Outside a server the guild-only guard answers before any argument is used.
	if m.GuildID != "" || !meta.GuildOnly() {
		opts, err := command.ParseArgs(ctx, d.api, m.GuildID, meta.Args(), rest)
		if err != nil {
			d.fail(c.Name(), err)
			return
		}
		inv.Options = opts
	}
	d.run(ctx, c, name, rest, inv)
}

func (d *dispatcher) handleInteraction(ctx context.Context, botID string, i *discordgo.Interaction) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	c := d.opts.Commands.Get(data.Name)
	if c == nil {
		log.Warn().Str("command", data.Name).Msg("unknown slash command")
		return
	}
	meta, ok := command.Meta(c)
	if !ok {
		log.Warn().Str("command", c.Name()).Msg("registered command has no discord descriptor")
		return
	}

	inv := &command.Invocation{
		API:       d.api,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		ID:        i.ID,
		Author:    i.User,
		BotID:     botID,
		Responder: &interactionResponder{api: d.api, interaction: i},
		Data:      d.data,
	}
	if i.Member != nil {
		member := *i.Member
		member.GuildID = i.GuildID
		inv.Member = &member
		inv.Author = member.User
	}

	opts, err := command.InteractionOptions(meta.Args(), data)
	if err != nil {
		d.fail(c.Name(), err)
		return
	}
	inv.Options = opts
	d.run(ctx, c, data.Name, "", inv)
}

func (d *dispatcher) run(ctx context.Context, c cmd.Command, invokedAs, raw string, inv *command.Invocation) {
	err := c.Run(ctx, &cmd.Invocation{Name: invokedAs, Args: raw, Data: inv})
	if err != nil {
		d.fail(c.Name(), err)
	}
}

func (d *dispatcher) fail(name string, err error) {
	d.opts.OnError(&Error{Kind: ErrorCommand, Command: name, Err: err})
}
