package cmd

import (
	"fmt"
	"sort"
	"strings"
)

// Registry stores commands by name and alias. It does not perform dispatch;
// each adapter looks up commands and invokes them with its own context.
// A Registry is filled once at startup and only read afterwards.
type Registry struct {
	caseInsensitive bool
	commands        map[string]Command
	names           map[string]Command
}

// NewRegistry returns an empty registry. When caseInsensitive is set, Get
// matches names and aliases regardless of case.
func NewRegistry(caseInsensitive bool) *Registry {
	return &Registry{
		caseInsensitive: caseInsensitive,
		commands:        make(map[string]Command),
		names:           make(map[string]Command),
	}
}

// Register adds a command under its name and every alias of its root command.
// A name or alias that is already taken is an error.
func (r *Registry) Register(c Command) error {
	keys := []string{c.Name()}
	if a, ok := Root(c).(Aliased); ok {
		keys = append(keys, a.Aliases()...)
	}

	for _, k := range keys {
		if prev, ok := r.names[r.key(k)]; ok {
			return fmt.Errorf("command %q: name %q already used by %q", c.Name(), k, prev.Name())
		}
	}

	r.commands[c.Name()] = c
	for _, k := range keys {
		r.names[r.key(k)] = c
	}
	return nil
}

// MustRegister is like Register but panics on conflicts. Usually called
// during setup.
func (r *Registry) MustRegister(cmds ...Command) {
	for _, c := range cmds {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
}

// Get returns the command registered under name or alias, or nil.
func (r *Registry) Get(name string) Command {
	return r.names[r.key(name)]
}

// GetAll returns all registered commands, sorted by name. Aliases are not
// repeated.
func (r *Registry) GetAll() []Command {
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

// Len returns the number of distinct commands.
func (r *Registry) Len() int { return len(r.commands) }

func (r *Registry) key(name string) string {
	if r.caseInsensitive {
		return strings.ToLower(name)
	}
	return name
}
