package moderation

import (
	"context"
	"fmt"
	"math"
	"time"

	"cerebro/internal/command"
	"cerebro/internal/config"
	"cerebro/pkg/duration"

	"github.com/bwmarrin/discordgo"
)

const defaultMuteDuration = "1h"

// latestUnix is the last second a time.Time can hold.
const latestUnix = math.MaxInt64 - 62135596800

type MuteCommand struct{}

func (c *MuteCommand) Name() string           { return "mute" }
func (c *MuteCommand) Description() string    { return "Mute/timeout a member" }
func (c *MuteCommand) Aliases() []string      { return []string{"timeout"} }
func (c *MuteCommand) Category() string       { return config.CategoryModeration }
func (c *MuteCommand) UserPermissions() int64 { return discordgo.PermissionModerateMembers }
func (c *MuteCommand) BotPermissions() int64  { return discordgo.PermissionModerateMembers }
func (c *MuteCommand) GuildOnly() bool        { return true }

func (c *MuteCommand) Args() []command.Arg {
	return []command.Arg{
		memberArg("The member you want to mute"),
		{Name: "duration", Description: "The duration for it, e.g. 30s, 10min, 2h, 1day", Kind: command.String},
		reasonArg,
	}
}

func (c *MuteCommand) Run(ctx context.Context, inv *command.Invocation) error {
	member, ok := inv.Options.Member("member")
	if !ok {
		return &command.ArgError{Arg: "member", Err: command.ErrMissingArgument}
	}
	raw := inv.Options.StringOr("duration", defaultMuteDuration)
	reason := inv.Options.StringOr("reason", command.DefaultReason)

	secs, err := inv.Data.Durations.Parse(raw)
	if err != nil {
		return err
	}
	until, err := timeoutUntil(inv.Clock(), secs)
	if err != nil {
		return err
	}

	if err := inv.API.GuildMemberTimeout(inv.GuildID, member.User.ID, &until, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to mute %s: %w", member.User.Username, err)
	}

	return inv.ReplyEmbed(ctx, "Member Muted",
		fmt.Sprintf("Successfully muted `%s` for `%s` because of `%s`", member.User.Username, raw, reason))
}

// timeoutUntil returns now truncated to the second plus secs.
func timeoutUntil(now time.Time, secs int64) (time.Time, error) {
	start := now.Unix()
	if secs > latestUnix-start {
		return time.Time{}, fmt.Errorf("%w: %d seconds from now is out of range", duration.ErrInvalidDuration, secs)
	}
	return time.Unix(start+secs, 0).UTC(), nil
}
