package discord

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// hashCache stores the definition hashes of the last successful global
// registration.
type hashCache struct {
	dir string
}

func (c hashCache) path() string {
	return filepath.Join(c.dir, "global.json")
}

// load returns the cached hashes. A missing or unreadable file is an empty cache.
func (c hashCache) load() map[string]string {
	hashes := make(map[string]string)
	if c.dir == "" {
		return hashes
	}
	if data, err := os.ReadFile(c.path()); err == nil {
		_ = json.Unmarshal(data, &hashes)
	}
	return hashes
}

func (c hashCache) save(hashes map[string]string) error {
	if c.dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.MarshalIndent(hashes, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(), data, 0o644)
}
