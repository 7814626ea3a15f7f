package logger

import (
	"strings"

	"github.com/columbia6/time/internal/domain/port/core"
)

// LevelFromString maps a configured level name to a LogLevel. Unknown
// names fall back to info.
func LevelFromString(level string) core.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return core.LogLevelDebug
	case "warn", "warning":
		return core.LogLevelWarn
	case "error":
		return core.LogLevelError
	default:
		return core.LogLevelInfo
	}
}
