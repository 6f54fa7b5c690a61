package discord

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// HashDefinition returns a deterministic hash of a slash definition. Fields
// Discord assigns (IDs, versions) are ignored and options are sorted.
func HashDefinition(def *discordgo.ApplicationCommand) string {
	data, _ := json.Marshal(normalizeForHash(def))
	return fmt.Sprintf("%x", sha1.Sum(data))
}

// hashDefinitions maps command names to their definition hash.
func hashDefinitions(defs []*discordgo.ApplicationCommand) map[string]string {
	hashes := make(map[string]string, len(defs))
	for _, d := range defs {
		hashes[d.Name] = HashDefinition(d)
	}
	return hashes
}

func normalizeForHash(def *discordgo.ApplicationCommand) map[string]any {
	obj := map[string]any{
		"name":        def.Name,
		"description": def.Description,
		"type":        def.Type,
	}
	if def.DefaultMemberPermissions != nil {
		obj["default_member_permissions"] = *def.DefaultMemberPermissions
	}
	if def.DMPermission != nil {
		obj["dm_permission"] = *def.DMPermission
	}
	if len(def.Options) > 0 {
		obj["options"] = normalizeOptions(def.Options)
	}
	return obj
}

func normalizeOptions(opts []*discordgo.ApplicationCommandOption) []map[string]any {
	normalized := make([]map[string]any, len(opts))
	for i, o := range opts {
		entry := map[string]any{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
			"required":    o.Required,
		}
		if o.MinValue != nil {
			entry["min_value"] = *o.MinValue
		}
		if o.MaxValue != 0 {
			entry["max_value"] = o.MaxValue
		}
		if len(o.Options) > 0 {
			entry["options"] = normalizeOptions(o.Options)
		}
		normalized[i] = entry
	}

	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i]["name"].(string) < normalized[j]["name"].(string)
	})
	return normalized
}
