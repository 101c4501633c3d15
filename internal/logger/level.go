package logger

import "strings"

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Levels lists the accepted log level names from most to least verbose.
var Levels = []string{"trace", "debug", "info", "warn", "error"}

// IsValidLevel reports whether level names a known log level (case-insensitive).
func IsValidLevel(level string) bool {
	normalized := strings.ToLower(strings.TrimSpace(level))
	for _, l := range Levels {
		if l == normalized {
			return true
		}
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	if IsValidLevel(level) {
		return strings.ToLower(strings.TrimSpace(level))
	}
	return "info"
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// enabled reports whether a message at messageLevel passes the configured level.
func enabled(configured, messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(configured)
}
