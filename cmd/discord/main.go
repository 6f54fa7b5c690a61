package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cerebro/internal/command"
	"cerebro/internal/config"
	"cerebro/internal/discord"
	"cerebro/internal/logging"
	"cerebro/internal/secrets"
	v "cerebro/internal/version"
	"cerebro/internal/weather"
	"cerebro/pkg/duration"
	"cerebro/pkg/retrylimit"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"
)

type cli struct {
	EnvFile []string         `name:"env-file" default:".env" help:"Dotenv files holding the token and settings. Missing files are skipped."`
	Version kong.VersionFlag `help:"Print the version and exit."`
}

func main() {
	ctx := kong.Parse(
		&cli{},
		kong.Name("cerebro"),
		kong.Description(v.AppName+" moderation and utility Discord bot"),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": v.Version},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func (c *cli) Run() error {
	startedAt := time.Now()

	store, err := secrets.NewEnv(c.EnvFile...)
	if err != nil {
		return fmt.Errorf("read env files: %w", err)
	}
	cfg, err := config.Load(store, store.Environ())
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	log.Info().Str("version", v.Version).Msgf("starting %s bot", v.AppName)

	reg, err := discord.BuildRegistry(true, cfg.CommandTimeout)
	if err != nil {
		return err
	}

	data := &command.Data{
		StartedAt:  startedAt,
		HelpFooter: cfg.HelpFooter,
		Weather:    weather.New(cfg.WeatherURL),
		Durations:  duration.Parser{Policy: cfg.DurationPolicy()},
		Deletes:    retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5),
	}
	bot, err := discord.New(cfg.DiscordToken, discord.Options{
		Prefix:          cfg.Prefix,
		CaseInsensitive: true,
		Commands:        reg,
		CacheDir:        cfg.CommandCacheDir,
	}, data)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil {
		return fmt.Errorf("discord bot: %w", err)
	}
	log.Info().Msg("discord bot exited cleanly")
	return nil
}
