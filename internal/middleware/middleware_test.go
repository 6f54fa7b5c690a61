package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"cerebro/internal/command"
	"cerebro/internal/command/commandtest"
	"cerebro/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gated struct {
	perms int64
	guild bool
	ran   int
	run   func(context.Context) error
}

func (g *gated) Name() string           { return "kick" }
func (g *gated) Description() string    { return "Kicks a member" }
func (g *gated) Aliases() []string      { return nil }
func (g *gated) Category() string       { return "test" }
func (g *gated) Args() []command.Arg    { return nil }
func (g *gated) UserPermissions() int64 { return g.perms }
func (g *gated) BotPermissions() int64  { return g.perms }
func (g *gated) GuildOnly() bool        { return g.guild }
func (g *gated) Run(ctx context.Context, _ *command.Invocation) error {
	g.ran++
	if g.run != nil {
		return g.run(ctx)
	}
	return nil
}

const modID = "200000000000000001"

func setup(t *testing.T, g *gated, mws ...cmd.Middleware) (cmd.Command, *cmd.Invocation, *commandtest.API, *commandtest.Responder) {
	t.Helper()
	api := commandtest.NewAPI()
	mod := api.AddMember(modID, "mod", "")
	di, resp := commandtest.New(api, mod, time.Now())
	c := cmd.Apply(&command.DiscordAdapter{Cmd: g}, mws...)
	return c, &cmd.Invocation{Name: "kick", Data: di}, api, resp
}

func TestUserPermissionCheck(t *testing.T) {
	g := &gated{perms: discordgo.PermissionKickMembers}
	c, inv, api, resp := setup(t, g, WithUserPermissionCheck())

	api.Perms[modID] = discordgo.PermissionSendMessages
	require.NoError(t, c.Run(context.Background(), inv))
	assert.Equal(t, 0, g.ran)
	require.Len(t, resp.Replies, 1)
	assert.Contains(t, resp.Replies[0].Content, "`Kick Members`")

	api.Perms[modID] = discordgo.PermissionKickMembers
	require.NoError(t, c.Run(context.Background(), inv))
	assert.Equal(t, 1, g.ran)

	api.Perms[modID] = discordgo.PermissionAdministrator
	require.NoError(t, c.Run(context.Background(), inv))
	assert.Equal(t, 2, g.ran)
}

func TestUserPermissionCheckLookupFails(t *testing.T) {
	g := &gated{perms: discordgo.PermissionKickMembers}
	c, inv, _, _ := setup(t, g, WithUserPermissionCheck())

	err := c.Run(context.Background(), inv)
	require.Error(t, err)
	assert.Equal(t, 0, g.ran)
}

func TestBotPermissionCheck(t *testing.T) {
	g := &gated{perms: discordgo.PermissionBanMembers | discordgo.PermissionKickMembers}
	c, inv, api, resp := setup(t, g, WithBotPermissionCheck())

	api.Perms[commandtest.BotID] = discordgo.PermissionKickMembers
	require.NoError(t, c.Run(context.Background(), inv))
	assert.Equal(t, 0, g.ran)
	require.Len(t, resp.Replies, 1)
	assert.Equal(t, "I need the following permissions to run this command:\n`Ban Members`", resp.Replies[0].Content)

	api.Perms[commandtest.BotID] = discordgo.PermissionKickMembers | discordgo.PermissionBanMembers
	require.NoError(t, c.Run(context.Background(), inv))
	assert.Equal(t, 1, g.ran)
}

func TestNoPermissionsDeclared(t *testing.T) {
	g := &gated{}
	c, inv, _, _ := setup(t, g, WithUserPermissionCheck(), WithBotPermissionCheck())
	require.NoError(t, c.Run(context.Background(), inv))
	assert.Equal(t, 1, g.ran)
}

func TestGuildOnly(t *testing.T) {
	g := &gated{guild: true}
	c, inv, _, resp := setup(t, g, WithGuildOnly())

	inv.Data.(*command.Invocation).GuildID = ""
	require.NoError(t, c.Run(context.Background(), inv))
	assert.Equal(t, 0, g.ran)
	assert.Equal(t, "This command can only be used in a server.", resp.Last().Content)

	inv.Data.(*command.Invocation).GuildID = commandtest.GuildID
	require.NoError(t, c.Run(context.Background(), inv))
	assert.Equal(t, 1, g.ran)
}

func TestRecover(t *testing.T) {
	g := &gated{run: func(context.Context) error { panic("nil member") }}
	c, inv, _, _ := setup(t, g, WithRecover(), WithCommandLogger())

	err := c.Run(context.Background(), inv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil member")
}

func TestTimeout(t *testing.T) {
	g := &gated{run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	c, inv, _, _ := setup(t, g, WithTimeout(10*time.Millisecond))
	assert.True(t, errors.Is(c.Run(context.Background(), inv), context.DeadlineExceeded))

	plain := &command.DiscordAdapter{Cmd: g}
	assert.Same(t, plain, WithTimeout(0)(plain))
}

func TestPermissionList(t *testing.T) {
	assert.Equal(t, "`Ban Members`, `Kick Members`", PermissionList(discordgo.PermissionKickMembers|discordgo.PermissionBanMembers))
	assert.Equal(t, "`0x8000000000`", PermissionList(1<<39))
}
