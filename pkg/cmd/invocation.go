// Package cmd provides a transport-agnostic command core: a command is something
// with a name, description, and Run(ctx, invocation). How it is registered and
// dispatched (Discord prefix messages, slash interactions, CLI) is defined by
// adapters that wrap this.
package cmd

import "context"

// Invocation carries the minimal input any command runner can pass: the raw
// argument text and an opaque payload. Adapters set Data to their own context
// (e.g. *command.Invocation for Discord).
type Invocation struct {
	Name string
	Args string
	Data interface{}
}

// Command is the universal contract: identity plus execution. Permissions,
// argument declarations and transport-specific registration stay in adapters.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// Aliased is implemented by commands that answer to more than one name.
type Aliased interface {
	Aliases() []string
}
