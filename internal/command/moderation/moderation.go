// Package moderation holds the member and channel moderation commands.
package moderation

import (
	"cerebro/internal/command"
)

// Commands returns every moderation command.
func Commands() []command.Command {
	return []command.Command{
		&KickCommand{},
		&BanCommand{},
		&UnbanCommand{},
		&MuteCommand{},
		&UnmuteCommand{},
		&PurgeCommand{},
		&SlowmodeCommand{},
	}
}

var reasonArg = command.Arg{Name: "reason", Description: "The reason for it", Kind: command.String, Rest: true}

func memberArg(desc string) command.Arg {
	return command.Arg{Name: "member", Description: desc, Kind: command.Member, Required: true}
}
