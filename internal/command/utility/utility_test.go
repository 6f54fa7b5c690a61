package utility

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"cerebro/internal/command"
	"cerebro/internal/command/commandtest"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// Snowflake of 2016-04-30 11:18:25.796 UTC.
	aliceID = "175928847299117063"
	modID   = "200000000000000003"
)

var start = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newInvocation(t *testing.T) (*command.Invocation, *commandtest.API, *commandtest.Responder) {
	t.Helper()
	api := commandtest.NewAPI()
	alice := api.AddMember(aliceID, "alice", "Al", "r2", "r1")
	alice.User.Avatar = "a1b2c3"
	alice.JoinedAt = time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	mod := api.AddMember(modID, "mod", "")
	api.Roles = []*discordgo.Role{{ID: "r1", Name: "Admins"}, {ID: "r2", Name: "Cool People"}}

	inv, resp := commandtest.New(api, mod, start)
	return inv, api, resp
}

func TestPing(t *testing.T) {
	inv, _, resp := newInvocation(t)
	ticks := []time.Time{start, start.Add(142*time.Millisecond + 700*time.Microsecond)}
	inv.Now = func() time.Time {
		now := ticks[0]
		ticks = ticks[1:]
		return now
	}

	require.NoError(t, (&PingCommand{}).Run(context.Background(), inv))
	require.Len(t, resp.Replies, 1)
	assert.Equal(t, "Calculating ping...", resp.Replies[0].Content)
	require.Len(t, resp.Edits, 1)
	assert.Equal(t, "142 ms", resp.Edits[0].Content)
}

func TestPingReplyFails(t *testing.T) {
	inv, _, resp := newInvocation(t)
	resp.Err = errors.New("missing access")

	assert.Error(t, (&PingCommand{}).Run(context.Background(), inv))
	assert.Empty(t, resp.Edits)
}

func TestUptime(t *testing.T) {
	tests := map[time.Duration]string{
		0: "Uptime:",
		24*time.Hour + 5*time.Minute + 7*time.Second:  "Uptime: 1d 5m 7s",
		3*time.Hour + 999*time.Millisecond:            "Uptime: 3h",
		59 * time.Second:                              "Uptime: 59s",
		49*time.Hour + 60*time.Minute + 1*time.Second: "Uptime: 2d 2h 1s",
	}
	for elapsed, want := range tests {
		inv, _, resp := newInvocation(t)
		inv.Now = func() time.Time { return start.Add(elapsed) }

		require.NoError(t, (&UptimeCommand{}).Run(context.Background(), inv))
		assert.Equal(t, want, resp.Last().Content, elapsed.String())
	}
}

func TestAvatar(t *testing.T) {
	inv, api, resp := newInvocation(t)
	inv.Options = command.Options{"user": api.Users[aliceID]}

	require.NoError(t, (&AvatarCommand{}).Run(context.Background(), inv))
	e := resp.Last().Embed
	require.NotNil(t, e)
	assert.Equal(t, "Avatar", e.Title)
	assert.Equal(t, "`alice`'s avatar", e.Description)
	require.NotNil(t, e.Image)
	assert.Equal(t, api.Users[aliceID].AvatarURL("1024"), e.Image.URL)
	assert.Contains(t, e.Image.URL, "a1b2c3")
}

func TestAvatarDefaultsToInvoker(t *testing.T) {
	inv, _, resp := newInvocation(t)

	require.NoError(t, (&AvatarCommand{}).Run(context.Background(), inv))
	assert.Equal(t, "`mod`'s avatar", resp.Last().Embed.Description)
}

func field(t *testing.T, e *discordgo.MessageEmbed, name string) string {
	t.Helper()
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	t.Fatalf("field %q not found", name)
	return ""
}

func TestUserinfo(t *testing.T) {
	inv, api, resp := newInvocation(t)
	inv.Options = command.Options{"member": api.Members[aliceID]}

	require.NoError(t, (&UserinfoCommand{}).Run(context.Background(), inv))
	e := resp.Last().Embed
	require.NotNil(t, e)

	assert.Equal(t, "alice", e.Title)
	assert.Equal(t, aliceID, field(t, e, "ID"))
	assert.Equal(t, "Al", field(t, e, "Nickname"))
	assert.Equal(t, "<t:1462015105:F>", field(t, e, "Account created"))
	assert.Equal(t, "<t:1577934245:F>", field(t, e, "Joined server"))
	assert.Equal(t, "`Cool People` `Admins`", field(t, e, "Roles"))
}

func TestUserinfoDefaultsToInvoker(t *testing.T) {
	inv, _, resp := newInvocation(t)

	require.NoError(t, (&UserinfoCommand{}).Run(context.Background(), inv))
	e := resp.Last().Embed
	assert.Equal(t, "mod", e.Title)
	assert.Equal(t, "none", field(t, e, "Nickname"))
	assert.Equal(t, "none", field(t, e, "Roles"))
	assert.Equal(t, "unknown", field(t, e, "Joined server"))
}

type fakeWeather struct {
	status int
	body   string
	err    error
	asked  string
}

func (f *fakeWeather) Fetch(_ context.Context, location string) (int, string, error) {
	f.asked = location
	return f.status, f.body, f.err
}

func TestWeather(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusOK, "Paris: ⛅️ +12°C"},
		{http.StatusNotFound, "Location Paris not found"},
		{http.StatusBadRequest, "Are you trying to hack weather?"},
		{http.StatusServiceUnavailable, "An error occured: 503"},
		{http.StatusForbidden, "An error occured: 403"},
	}
	for _, tt := range tests {
		inv, _, resp := newInvocation(t)
		w := &fakeWeather{status: tt.status, body: "Paris: ⛅️ +12°C"}
		inv.Data.Weather = w
		inv.Options = command.Options{"location": "Paris"}

		require.NoError(t, (&WeatherCommand{}).Run(context.Background(), inv))
		assert.Equal(t, "Paris", w.asked)
		assert.Equal(t, 1, resp.Deferred)
		assert.Equal(t, tt.want, resp.Last().Content)
	}
}

func TestWeatherTransportError(t *testing.T) {
	inv, _, resp := newInvocation(t)
	inv.Data.Weather = &fakeWeather{err: errors.New("connection refused")}
	inv.Options = command.Options{"location": "Paris"}

	err := (&WeatherCommand{}).Run(context.Background(), inv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, resp.Replies)
}
