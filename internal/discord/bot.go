package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cerebro/internal/command"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Intents the bot identifies with. Message content is needed for prefix commands.
const Intents = discordgo.IntentsAllWithoutPrivileged | discordgo.IntentsMessageContent

// Bot is a Discord bot serving the commands of Options.Commands.
type Bot struct {
	dg   *discordgo.Session
	opts Options
	data *command.Data

	registerOnce sync.Once
	setupErr     chan error
}

// New prepares a bot. Nothing connects until Run.
func New(token string, opts Options, data *command.Data) (*Bot, error) {
	if opts.Commands == nil {
		return nil, errors.New("no command registry")
	}
	opts = opts.withDefaults()

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	dg.Identify.Intents = Intents

	data.Commands = opts.Commands
	data.Prefix = opts.Prefix

	return &Bot{
		dg:       dg,
		opts:     opts,
		data:     data,
		setupErr: make(chan error, 1),
	}, nil
}

// Run connects to Discord and serves until ctx is done or setup fails.
func (b *Bot) Run(ctx context.Context) error {
	disp := newDispatcher(b.opts, b.data, b.dg)

	b.dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.onReady(ctx, s, r)
	})
	b.dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		disp.handleMessage(ctx, selfID(s), m.Message)
	})
	b.dg.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		disp.handleInteraction(ctx, selfID(s), i.Interaction)
	})

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received, cleaning up")
		return nil
	case err := <-b.setupErr:
		return err
	}
}

// onReady registers the slash commands on the first ready event only.
// Reconnects fire ready again and must not re-register.
func (b *Bot) onReady(ctx context.Context, s *discordgo.Session, r *discordgo.Ready) {
	log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("discord bot is running")

	b.registerOnce.Do(func() {
		if _, err := registerCommands(ctx, s, r.User.ID, b.opts.Commands, b.opts.CacheDir); err != nil {
			e := &Error{Kind: ErrorSetup, Err: err}
			b.opts.OnError(e)
			b.setupErr <- e
		}
	})
}

func selfID(s *discordgo.Session) string {
	if s.State != nil && s.State.User != nil {
		return s.State.User.ID
	}
	return ""
}
