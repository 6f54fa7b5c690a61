package discord

import (
	"fmt"

	"cerebro/pkg/cmd"

	"github.com/rs/zerolog/log"
)

// ErrorKind tells where an Error was raised.
type ErrorKind int

const (
	// ErrorCommand is a failed command run. The bot keeps serving.
	ErrorCommand ErrorKind = iota
	// ErrorSetup is a failure while preparing the bot. It stops Run.
	ErrorSetup
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorCommand:
		return "command"
	case ErrorSetup:
		return "setup"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is what the bot hands to Options.OnError.
type Error struct {
	Kind    ErrorKind
	Command string
	Err     error
}

func (e *Error) Error() string {
	if e.Kind == ErrorCommand {
		return fmt.Sprintf("Error in command `%s`: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("setup failed: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorHandler receives every command and setup error.
type ErrorHandler func(*Error)

// DefaultErrorHandler logs the error. Nothing is sent to Discord.
func DefaultErrorHandler(e *Error) {
	ev := log.Error().Str("kind", e.Kind.String())
	if e.Command != "" {
		ev = ev.Str("command", e.Command)
	}
	ev.Msg(e.Error())
}

// Options configures the bot runtime.
type Options struct {
	Prefix string
	// CaseInsensitive lets the prefix match regardless of case. Command names
	// follow the registry's own setting.
	CaseInsensitive bool
	Commands        *cmd.Registry
	OnError         ErrorHandler
	// CacheDir holds the slash definition hashes. Empty disables the cache.
	CacheDir string
}

func (o Options) withDefaults() Options {
	if o.Prefix == "" {
		o.Prefix = ">"
	}
	if o.OnError == nil {
		o.OnError = DefaultErrorHandler
	}
	return o
}
