// Package secrets looks up credentials such as the bot token. The bot only
// depends on the Store interface; the default implementation reads process
// environment variables with optional .env files layered underneath.
package secrets

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store is a read-only secret lookup.
type Store interface {
	Get(key string) (string, bool)
}

// Map is an in-memory Store.
type Map map[string]string

// Get implements Store. Empty values count as missing.
func (m Map) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok && v != ""
}

// Env is a Store backed by the process environment. Values from the .env
// files it was created with are used when a key is not set in the
// environment.
type Env struct {
	files Map
}

// NewEnv reads the given .env files (".env" when none are named). Files that
// do not exist are skipped; malformed files are an error.
func NewEnv(paths ...string) (*Env, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	files := Map{}
	for _, p := range paths {
		vals, err := godotenv.Read(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for k, v := range vals {
			if _, seen := files[k]; !seen {
				files[k] = v
			}
		}
	}
	return &Env{files: files}, nil
}

// Get implements Store. Empty values count as missing.
func (e *Env) Get(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v, true
	}
	return e.files.Get(key)
}

// Environ merges the .env values with the process environment, the process
// environment winning. The result is suitable for env.Options.Environment.
func (e *Env) Environ() map[string]string {
	out := make(map[string]string, len(e.files))
	for k, v := range e.files {
		out[k] = v
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}
