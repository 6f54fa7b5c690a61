package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// ArgKind is the type of a declared argument.
type ArgKind int

const (
	String ArgKind = iota
	Integer
	User
	Member
)

func (k ArgKind) String() string {
	switch k {
	case String:
		return "text"
	case Integer:
		return "number"
	case User:
		return "user"
	case Member:
		return "member"
	default:
		return fmt.Sprintf("ArgKind(%d)", int(k))
	}
}

// Arg declares one positional argument.
type Arg struct {
	Name        string
	Description string
	Kind        ArgKind
	Required    bool
	// Rest makes a String argument consume the remaining input.
	Rest bool
	// Min and Max bound Integer arguments in the slash definition.
	Min, Max *float64
}

var (
	ErrMissingArgument = errors.New("missing argument")
	ErrBadArgument     = errors.New("bad argument")
)

// ArgError reports a required argument that is absent or does not parse.
type ArgError struct {
	Arg   string
	Value string
	Err   error
}

func (e *ArgError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Arg, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Arg, e.Value, e.Err)
}

func (e *ArgError) Unwrap() error { return e.Err }

// Options holds parsed argument values by name: string, int64,
// *discordgo.User or *discordgo.Member.
type Options map[string]any

func (o Options) String(name string) (string, bool) {
	v, ok := o[name].(string)
	return v, ok
}

func (o Options) StringOr(name, def string) string {
	if v, ok := o.String(name); ok && v != "" {
		return v
	}
	return def
}

func (o Options) Int(name string) (int64, bool) {
	v, ok := o[name].(int64)
	return v, ok
}

func (o Options) User(name string) (*discordgo.User, bool) {
	switch v := o[name].(type) {
	case *discordgo.User:
		return v, v != nil
	case *discordgo.Member:
		if v != nil && v.User != nil {
			return v.User, true
		}
	}
	return nil, false
}

func (o Options) Member(name string) (*discordgo.Member, bool) {
	v, ok := o[name].(*discordgo.Member)
	return v, ok && v != nil
}

// Usage renders the argument list, e.g. "<member> [duration] [reason...]".
func Usage(args []Arg) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		name := a.Name
		if a.Rest {
			name += "..."
		}
		if a.Required {
			parts = append(parts, "<"+name+">")
		} else {
			parts = append(parts, "["+name+"]")
		}
	}
	return strings.Join(parts, " ")
}

type token struct {
	text string
	end  int
}

// tokenize splits on whitespace. A double-quoted token may contain spaces.
func tokenize(s string) []token {
	var out []token
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}
		start := i
		if r == '"' {
			if end := strings.IndexByte(s[i+1:], '"'); end >= 0 {
				i += end + 2
				out = append(out, token{text: s[start+1 : i-1], end: i})
				continue
			}
		}
		for i < len(s) {
			r, size = utf8.DecodeRuneInString(s[i:])
			if unicode.IsSpace(r) {
				break
			}
			i += size
		}
		out = append(out, token{text: s[start:i], end: i})
	}
	return out
}

// ParseArgs parses prefix command input against the declared arguments.
// Optional arguments are skipped when the next token does not convert to
// their kind; String arguments accept any token.
func ParseArgs(ctx context.Context, api API, guildID string, args []Arg, raw string) (Options, error) {
	opts := Options{}
	toks := tokenize(raw)

	for _, a := range args {
		if len(toks) == 0 {
			if a.Required {
				return nil, &ArgError{Arg: a.Name, Err: ErrMissingArgument}
			}
			continue
		}

		if a.Kind == String && a.Rest {
			// The first token is unquoted, the remainder is kept verbatim.
			opts[a.Name] = toks[0].text + strings.TrimRightFunc(raw[toks[0].end:], unicode.IsSpace)
			toks = nil
			continue
		}

		v, err := convert(ctx, api, guildID, a.Kind, toks[0].text)
		if err != nil {
			if a.Required {
				return nil, &ArgError{Arg: a.Name, Value: toks[0].text, Err: err}
			}
			continue
		}
		opts[a.Name] = v
		toks = toks[1:]
	}
	return opts, nil
}

func convert(ctx context.Context, api API, guildID string, kind ArgKind, s string) (any, error) {
	switch kind {
	case String:
		return s, nil
	case Integer:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: not a number", ErrBadArgument)
		}
		return n, nil
	case User:
		return resolveUser(ctx, api, s)
	case Member:
		return resolveMember(ctx, api, guildID, s)
	default:
		return nil, fmt.Errorf("%w: unsupported kind %s", ErrBadArgument, kind)
	}
}

// mentionID extracts the snowflake from "<@id>", "<@!id>" or a bare id.
func mentionID(s string) (string, bool) {
	if strings.HasPrefix(s, "<@") && strings.HasSuffix(s, ">") {
		s = strings.TrimPrefix(s[2:len(s)-1], "!")
	}
	if s == "" {
		return "", false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", false
		}
	}
	return s, true
}

func resolveUser(ctx context.Context, api API, s string) (*discordgo.User, error) {
	id, ok := mentionID(s)
	if !ok {
		return nil, fmt.Errorf("%w: not a user mention or id", ErrBadArgument)
	}
	u, err := api.User(id, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadArgument, err)
	}
	return u, nil
}

func resolveMember(ctx context.Context, api API, guildID, s string) (*discordgo.Member, error) {
	if guildID == "" {
		return nil, fmt.Errorf("%w: members only exist in servers", ErrBadArgument)
	}

	if id, ok := mentionID(s); ok {
		m, err := api.GuildMember(guildID, id, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadArgument, err)
		}
		return m, nil
	}

	found, err := api.GuildMembersSearch(guildID, s, 10, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadArgument, err)
	}
	for _, m := range found {
		if m.User == nil {
			continue
		}
		if strings.EqualFold(m.User.Username, s) || strings.EqualFold(m.Nick, s) || strings.EqualFold(m.User.GlobalName, s) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: member not found", ErrBadArgument)
}
