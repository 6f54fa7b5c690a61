// Package utility holds the informational commands.
package utility

import "cerebro/internal/command"

// Commands returns every utility command.
func Commands() []command.Command {
	return []command.Command{
		&PingCommand{},
		&UptimeCommand{},
		&AvatarCommand{},
		&UserinfoCommand{},
		&WeatherCommand{},
	}
}
