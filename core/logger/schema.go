package logger

import (
	"slices"
	"strings"
)

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return "INFO"
	case "debug":
		return "DEBUG"
	case "warn", "warning":
		return "WARN"
	case "error":
		return "ERROR"
	case "fatal":
		return "FATAL"
	}
	return strings.ToUpper(level)
}

// normalizeWord lowercases enumerated values such as status and outcome.
func normalizeWord(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// defaultKeyOrder places the fields people scan for first. Keys not listed
// follow in alphabetical order.
var defaultKeyOrder = slices.Concat(
	[]string{"ts", "level", "component", "event", "status"},
	// correlation
	[]string{"rid", "rid_full", "ts_unix_nano", "update_id", "user_id", "chat_id", "chat_type", "handler"},
	// quiz
	[]string{
		"game_id", "stage", "from", "to", "kind", "step", "op", "cb_key", "outcome",
		"count", "index", "score", "remaining", "correct", "category_id", "difficulty", "format",
		"reason", "payload",
	},
	// transport
	[]string{
		"duration_ms", "messages", "kb", "lang", "username", "mode", "listen", "public_url", "url",
		"http_code", "attempts", "backoff_ms", "rate_limited",
	},
	// failures
	[]string{"err", "err_code", "cause", "retryable"},
)
