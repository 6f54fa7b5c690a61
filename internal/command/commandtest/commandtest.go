// Package commandtest provides in-memory fakes for testing commands without a
// Discord connection.
package commandtest

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"cerebro/internal/command"
	"cerebro/pkg/duration"

	"github.com/bwmarrin/discordgo"
)

// Guild and channel used by New.
const (
	GuildID   = "100000000000000001"
	ChannelID = "100000000000000002"
	MessageID = "100000000000000099"
	BotID     = "100000000000000003"
)

// NotFound mimics the REST error discordgo returns for unknown resources.
func NotFound() error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusNotFound, Status: "404 Not Found"},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownMember, Message: "Unknown Member"},
	}
}

// Timeout records one GuildMemberTimeout call.
type Timeout struct {
	UserID string
	Until  *time.Time
}

// Ban records one GuildBanCreateWithReason call.
type Ban struct {
	UserID string
	Reason string
	Days   int
}

// API is a fake command.API. Exported fields are the seeded state and the
// recorded calls.
type API struct {
	mu sync.Mutex

	Users    map[string]*discordgo.User
	Members  map[string]*discordgo.Member
	Roles    []*discordgo.Role
	Messages []*discordgo.Message
	// Perms maps user IDs to their channel permissions.
	Perms map[string]int64

	// Err, when set, is returned by every mutating call.
	Err error
	// DeleteErrs is consumed by ChannelMessageDelete, one entry per call.
	DeleteErrs []error

	Kicks      map[string]string
	Bans       []Ban
	Unbans     []string
	Timeouts   []Timeout
	Deleted    []string
	Edits      []*discordgo.ChannelEdit
	FetchLimit int
	FetchFrom  string
}

func NewAPI() *API {
	return &API{
		Users:   map[string]*discordgo.User{},
		Members: map[string]*discordgo.Member{},
		Perms:   map[string]int64{},
		Kicks:   map[string]string{},
	}
}

// AddMember seeds a guild member and its user.
func (a *API) AddMember(id, username, nick string, roles ...string) *discordgo.Member {
	u := &discordgo.User{ID: id, Username: username}
	m := &discordgo.Member{GuildID: GuildID, User: u, Nick: nick, Roles: roles}
	a.Users[id] = u
	a.Members[id] = m
	return m
}

func (a *API) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, _ ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.FetchLimit, a.FetchFrom = limit, beforeID

	var out []*discordgo.Message
	for _, m := range a.Messages {
		if m.ChannelID != channelID || (beforeID != "" && m.ID >= beforeID) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (a *API) ChannelMessageDelete(_, messageID string, _ ...discordgo.RequestOption) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.DeleteErrs) > 0 {
		err := a.DeleteErrs[0]
		a.DeleteErrs = a.DeleteErrs[1:]
		if err != nil {
			return err
		}
	}
	if a.Err != nil {
		return a.Err
	}
	a.Deleted = append(a.Deleted, messageID)
	return nil
}

func (a *API) ChannelEdit(channelID string, data *discordgo.ChannelEdit, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	a.Edits = append(a.Edits, data)
	ch := &discordgo.Channel{ID: channelID}
	if data.RateLimitPerUser != nil {
		ch.RateLimitPerUser = *data.RateLimitPerUser
	}
	return ch, nil
}

func (a *API) GuildMember(_, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if m, ok := a.Members[userID]; ok {
		return m, nil
	}
	return nil, NotFound()
}

func (a *API) GuildMembersSearch(_, query string, limit int, _ ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []*discordgo.Member
	for _, m := range a.Members {
		if strings.HasPrefix(strings.ToLower(m.User.Username), strings.ToLower(query)) ||
			strings.HasPrefix(strings.ToLower(m.Nick), strings.ToLower(query)) {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (a *API) GuildMemberDeleteWithReason(_, userID, reason string, _ ...discordgo.RequestOption) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.Kicks[userID] = reason
	return nil
}

func (a *API) GuildMemberTimeout(_, userID string, until *time.Time, _ ...discordgo.RequestOption) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.Timeouts = append(a.Timeouts, Timeout{UserID: userID, Until: until})
	return nil
}

func (a *API) GuildBanCreateWithReason(_, userID, reason string, days int, _ ...discordgo.RequestOption) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.Bans = append(a.Bans, Ban{UserID: userID, Reason: reason, Days: days})
	return nil
}

func (a *API) GuildBanDelete(_, userID string, _ ...discordgo.RequestOption) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.Unbans = append(a.Unbans, userID)
	return nil
}

func (a *API) GuildRoles(string, ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	return a.Roles, nil
}

func (a *API) User(userID string, _ ...discordgo.RequestOption) (*discordgo.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if u, ok := a.Users[userID]; ok {
		return u, nil
	}
	return nil, NotFound()
}

func (a *API) UserChannelPermissions(userID, _ string, _ ...discordgo.RequestOption) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.Perms[userID]
	if !ok {
		return 0, errors.New("no permissions seeded for " + userID)
	}
	return p, nil
}

// Responder records replies and edits in order.
type Responder struct {
	mu       sync.Mutex
	Deferred int
	Replies  []command.Reply
	Edits    []command.Reply
	Err      error
}

func (r *Responder) Defer(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Deferred++
	return nil
}

func (r *Responder) Reply(_ context.Context, reply command.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Replies = append(r.Replies, reply)
	return nil
}

func (r *Responder) Edit(_ context.Context, reply command.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if len(r.Replies) == 0 {
		return errors.New("edit before reply")
	}
	r.Edits = append(r.Edits, reply)
	return nil
}

// Last returns the latest reply or edit, or the zero Reply.
func (r *Responder) Last() command.Reply {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.Edits); n > 0 {
		return r.Edits[n-1]
	}
	if n := len(r.Replies); n > 0 {
		return r.Replies[n-1]
	}
	return command.Reply{}
}

// New builds an invocation in GuildID/ChannelID from author, with a fixed clock.
func New(api *API, author *discordgo.Member, now time.Time) (*command.Invocation, *Responder) {
	resp := &Responder{}
	inv := &command.Invocation{
		API:       api,
		GuildID:   GuildID,
		ChannelID: ChannelID,
		ID:        MessageID,
		Author:    author.User,
		Member:    author,
		BotID:     BotID,
		Options:   command.Options{},
		Responder: resp,
		Data: &command.Data{
			StartedAt: now,
			Prefix:    ">",
			Durations: duration.Parser{},
		},
		Now: func() time.Time { return now },
	}
	return inv, resp
}
