package moderation

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"cerebro/internal/command"
	"cerebro/internal/command/commandtest"
	"cerebro/pkg/duration"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceID = "200000000000000001"
	bobID   = "200000000000000002"
	modID   = "200000000000000003"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	api  *commandtest.API
	inv  *command.Invocation
	resp *commandtest.Responder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := commandtest.NewAPI()
	api.AddMember(aliceID, "alice", "")
	api.AddMember(bobID, "bob", "bobby")
	mod := api.AddMember(modID, "mod", "")
	inv, resp := commandtest.New(api, mod, now)
	return &fixture{api: api, inv: inv, resp: resp}
}

// run parses raw the way the prefix dispatcher does and runs c.
func (f *fixture) run(t *testing.T, c command.Command, raw string) error {
	t.Helper()
	opts, err := command.ParseArgs(context.Background(), f.api, f.inv.GuildID, c.Args(), raw)
	require.NoError(t, err)
	f.inv.Options = opts
	return c.Run(context.Background(), f.inv)
}

func (f *fixture) embed(t *testing.T) *discordgo.MessageEmbed {
	t.Helper()
	require.Len(t, f.resp.Replies, 1)
	e := f.resp.Replies[0].Embed
	require.NotNil(t, e)
	assert.Equal(t, command.EmbedColor, e.Color)
	return e
}

func TestKick(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, &KickCommand{}, "<@"+aliceID+"> being rude"))

	assert.Equal(t, "being rude", f.api.Kicks[aliceID])
	e := f.embed(t)
	assert.Equal(t, "Member Kicked", e.Title)
	assert.Equal(t, "Successfully kicked `alice` for `being rude`", e.Description)
}

func TestKickDefaultReason(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, &KickCommand{}, "bobby"))
	assert.Equal(t, command.DefaultReason, f.api.Kicks[bobID])
}

func TestKickFailurePropagatesWithoutReply(t *testing.T) {
	f := newFixture(t)
	f.api.Err = errors.New("403 Missing Permissions")

	err := f.run(t, &KickCommand{}, aliceID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to kick alice")
	assert.Empty(t, f.resp.Replies)
}

func TestBan(t *testing.T) {
	tests := []struct {
		raw    string
		days   int
		reason string
	}{
		{"<@" + aliceID + ">", 7, command.DefaultReason},
		{"<@" + aliceID + "> 0 spam bot", 0, "spam bot"},
		{"<@" + aliceID + "> 30", 7, command.DefaultReason},
		{"<@" + aliceID + "> -3 oops", 0, "oops"},
		{"<@" + aliceID + "> raid", 7, "raid"},
		{"<@" + aliceID + "> 2024 was rough", 7, "was rough"},
		{"<@" + aliceID + "> \"2024 was rough\"", 7, "2024 was rough"},
		{"<@" + aliceID + "> 1 \"2024\" was rough", 1, "2024 was rough"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.run(t, &BanCommand{}, tt.raw))

			require.Len(t, f.api.Bans, 1)
			assert.Equal(t, commandtest.Ban{UserID: aliceID, Reason: tt.reason, Days: tt.days}, f.api.Bans[0])
			e := f.embed(t)
			assert.Equal(t, "Member Banned", e.Title)
			assert.Equal(t, "Successfully banned `alice` for `"+tt.reason+"`", e.Description)
		})
	}
}

func TestUnban(t *testing.T) {
	f := newFixture(t)
	f.api.Users["200000000000000009"] = &discordgo.User{ID: "200000000000000009", Username: "gone"}

	require.NoError(t, f.run(t, &UnbanCommand{}, "<@200000000000000009>"))
	assert.Equal(t, []string{"200000000000000009"}, f.api.Unbans)
	e := f.embed(t)
	assert.Equal(t, "Member Unbanned", e.Title)
	assert.Equal(t, "Successfully unbanned `gone`", e.Description)
}

func TestMute(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, &MuteCommand{}, "<@"+aliceID+"> 2h spam"))

	require.Len(t, f.api.Timeouts, 1)
	got := f.api.Timeouts[0]
	assert.Equal(t, aliceID, got.UserID)
	require.NotNil(t, got.Until)
	assert.True(t, now.Add(7200*time.Second).Equal(*got.Until))

	e := f.embed(t)
	assert.Equal(t, "Member Muted", e.Title)
	assert.Contains(t, e.Description, "`alice`")
	assert.Contains(t, e.Description, "`2h`")
	assert.Contains(t, e.Description, "`spam`")
}

func TestMuteDefaults(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, &MuteCommand{}, "<@"+bobID+">"))

	require.Len(t, f.api.Timeouts, 1)
	assert.True(t, now.Add(time.Hour).Equal(*f.api.Timeouts[0].Until))
	assert.Equal(t, "Successfully muted `bob` for `1h` because of `no reason whatsoever`", f.embed(t).Description)
}

func TestMuteUnknownUnitIsNoop(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, &MuteCommand{}, "<@"+bobID+"> 10x"))

	require.Len(t, f.api.Timeouts, 1)
	assert.True(t, now.Equal(*f.api.Timeouts[0].Until))
	assert.Contains(t, f.embed(t).Description, "`10x`")
}

func TestMuteInvalidDuration(t *testing.T) {
	f := newFixture(t)
	err := f.run(t, &MuteCommand{}, "<@"+bobID+"> abc")

	assert.ErrorIs(t, err, duration.ErrInvalidDuration)
	assert.Empty(t, f.api.Timeouts)
	assert.Empty(t, f.resp.Replies)
}

func TestMuteStrictPolicy(t *testing.T) {
	f := newFixture(t)
	f.inv.Data.Durations = duration.Parser{Policy: duration.Strict}

	err := f.run(t, &MuteCommand{}, "<@"+bobID+"> 10x")
	assert.ErrorIs(t, err, duration.ErrUnknownUnit)
	assert.Empty(t, f.api.Timeouts)
}

func TestMuteOverflow(t *testing.T) {
	f := newFixture(t)
	err := f.run(t, &MuteCommand{}, "<@"+bobID+"> 106751991167300day")

	assert.ErrorIs(t, err, duration.ErrInvalidDuration)
	assert.Empty(t, f.api.Timeouts)
}

func TestUnmute(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, &UnmuteCommand{}, aliceID))

	require.Len(t, f.api.Timeouts, 1)
	assert.Nil(t, f.api.Timeouts[0].Until)
	e := f.embed(t)
	assert.Equal(t, "Member Unmuted", e.Title)
	assert.Equal(t, "Successfully unmuted `alice`", e.Description)
}

func seedMessages(api *commandtest.API, ids ...string) {
	for _, id := range ids {
		api.Messages = append(api.Messages, &discordgo.Message{ID: id, ChannelID: commandtest.ChannelID})
	}
}

func TestPurge(t *testing.T) {
	f := newFixture(t)
	seedMessages(f.api, "100000000000000010", "100000000000000011", "100000000000000012", "100000000000000013", commandtest.MessageID)

	require.NoError(t, f.run(t, &PurgeCommand{}, "3"))

	assert.Equal(t, 3, f.api.FetchLimit)
	assert.Equal(t, commandtest.MessageID, f.api.FetchFrom)
	assert.Equal(t, []string{"100000000000000013", "100000000000000012", "100000000000000011"}, f.api.Deleted)
	assert.Equal(t, 1, f.resp.Deferred)
	assert.Equal(t, "Successfully purged `3` messages from this channel", f.resp.Last().Content)
}

func TestPurgeAmountBounds(t *testing.T) {
	for raw, want := range map[string]int{"": 10, "0": 1, "500": 100, "42": 42} {
		f := newFixture(t)
		require.NoError(t, f.run(t, &PurgeCommand{}, raw))
		assert.Equal(t, want, f.api.FetchLimit, raw)
		assert.Equal(t, "Successfully purged `0` messages from this channel", f.resp.Last().Content)
	}
}

func TestPurgeRetriesServerErrors(t *testing.T) {
	f := newFixture(t)
	seedMessages(f.api, "100000000000000010", "100000000000000011")
	f.api.DeleteErrs = []error{
		&discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusTooManyRequests, Status: "429"}},
		nil,
		commandtest.NotFound(),
	}

	require.NoError(t, f.run(t, &PurgeCommand{}, "2"))
	assert.Equal(t, []string{"100000000000000011"}, f.api.Deleted)
	assert.Equal(t, "Successfully purged `1` messages from this channel", f.resp.Last().Content)
}

func TestPurgeStopsOnFatalError(t *testing.T) {
	f := newFixture(t)
	seedMessages(f.api, "100000000000000010", "100000000000000011", "100000000000000012")
	f.api.DeleteErrs = []error{nil, &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusForbidden, Status: "403"}}}

	err := f.run(t, &PurgeCommand{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 1 deletions")
	assert.Equal(t, []string{"100000000000000012"}, f.api.Deleted)
	assert.Empty(t, f.resp.Replies)
}

func TestPurgeCancelled(t *testing.T) {
	f := newFixture(t)
	seedMessages(f.api, "100000000000000010", "100000000000000011")
	f.inv.Options = command.Options{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := (&PurgeCommand{}).Run(ctx, f.inv)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.api.Deleted)
	assert.Empty(t, f.resp.Replies)
}

func TestSlowmode(t *testing.T) {
	tests := map[string]int{
		"30s":  30,
		"5min": 300,
		"0s":   0,
		"2day": 65535,
		"10x":  0,
	}
	for raw, want := range tests {
		f := newFixture(t)
		require.NoError(t, f.run(t, &SlowmodeCommand{}, raw))

		require.Len(t, f.api.Edits, 1, raw)
		require.NotNil(t, f.api.Edits[0].RateLimitPerUser)
		assert.Equal(t, want, *f.api.Edits[0].RateLimitPerUser, raw)
		assert.Equal(t, "Successfully added slowmode for `"+raw+"` in this channel", f.resp.Last().Content)
	}
}

func TestSlowmodeInvalid(t *testing.T) {
	f := newFixture(t)
	err := f.run(t, &SlowmodeCommand{}, "soon")
	assert.ErrorIs(t, err, duration.ErrInvalidDuration)
	assert.Empty(t, f.api.Edits)
}

func TestDescriptors(t *testing.T) {
	names := map[string]bool{}
	for _, c := range Commands() {
		assert.True(t, c.GuildOnly(), c.Name())
		assert.NotZero(t, c.UserPermissions(), c.Name())
		assert.Equal(t, c.UserPermissions(), c.BotPermissions(), c.Name())
		names[c.Name()] = true

		def := command.SlashDefinition(c)
		assert.LessOrEqual(t, len(def.Description), 100, c.Name())
		for _, o := range def.Options {
			assert.LessOrEqual(t, len(o.Description), 100, c.Name()+" "+o.Name)
		}
	}
	assert.Len(t, names, 7)
	assert.Equal(t, []string{"timeout"}, (&MuteCommand{}).Aliases())
	assert.Equal(t, []string{"clear"}, (&PurgeCommand{}).Aliases())
	assert.Equal(t, []string{"sm"}, (&SlowmodeCommand{}).Aliases())
}
