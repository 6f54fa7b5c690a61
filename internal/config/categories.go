package config

const (
	CategoryModeration = "🛡️ Moderation"
	CategoryUtilities  = "📢 Utilities"
)

// CategoryWeights orders categories in help output; unknown categories sort last.
var CategoryWeights = map[string]int{
	CategoryModeration: 0,
	CategoryUtilities:  10,
}
