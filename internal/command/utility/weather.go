package utility

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cerebro/internal/command"
	"cerebro/internal/config"
)

type WeatherCommand struct{}

func (c *WeatherCommand) Name() string           { return "weather" }
func (c *WeatherCommand) Description() string    { return "Show the current weather for a location" }
func (c *WeatherCommand) Aliases() []string      { return nil }
func (c *WeatherCommand) Category() string       { return config.CategoryUtilities }
func (c *WeatherCommand) UserPermissions() int64 { return 0 }
func (c *WeatherCommand) BotPermissions() int64  { return 0 }
func (c *WeatherCommand) GuildOnly() bool        { return false }

func (c *WeatherCommand) Args() []command.Arg {
	return []command.Arg{
		{Name: "location", Description: "City, airport code or landmark", Kind: command.String, Required: true, Rest: true},
	}
}

func (c *WeatherCommand) Run(ctx context.Context, inv *command.Invocation) error {
	location, ok := inv.Options.String("location")
	if !ok || location == "" {
		return &command.ArgError{Arg: "location", Err: command.ErrMissingArgument}
	}
	if inv.Data.Weather == nil {
		return errors.New("weather lookups are not configured")
	}

	if err := inv.Defer(ctx); err != nil {
		return err
	}

	status, body, err := inv.Data.Weather.Fetch(ctx, location)
	if err != nil {
		return fmt.Errorf("weather lookup for %q: %w", location, err)
	}

	return inv.Reply(ctx, command.Reply{Content: weatherText(location, status, body)})
}

func weatherText(location string, status int, body string) string {
	switch {
	case status == http.StatusNotFound:
		return fmt.Sprintf("Location %s not found", location)
	case status == http.StatusBadRequest:
		return "Are you trying to hack weather?"
	case status > http.StatusBadRequest:
		return fmt.Sprintf("An error occured: %d", status)
	default:
		return body
	}
}
