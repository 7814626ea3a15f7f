package database

import (
	"context"
	"strings"
	"time"

	coreport "github.com/columbia6/time/internal/domain/port/core"
	"gorm.io/gorm/logger"
)

// gormLevels maps configured level names onto GORM levels. Debug maps to
// Info because GORM has no finer level; routine statements are demoted to
// debug by Trace itself.
var gormLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
	"debug":  logger.Info,
}

// QueryLogger adapts the core logger to GORM's logger interface
type QueryLogger struct {
	core          coreport.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

// NewQueryLogger creates a GORM logger at the named level
func NewQueryLogger(core coreport.Logger, level string) logger.Interface {
	gormLevel, ok := gormLevels[strings.ToLower(level)]
	if !ok {
		gormLevel = logger.Warn
	}

	return &QueryLogger{
		core:          core,
		level:         gormLevel,
		slowThreshold: 200 * time.Millisecond,
	}
}

// LogMode returns a copy of the logger at the given level
func (l *QueryLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// Info forwards GORM info messages to the core logger
func (l *QueryLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		l.core.Info(msg, map[string]any{"source": "database"})
	}
}

// Warn forwards GORM warnings to the core logger
func (l *QueryLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		l.core.Warn(msg, map[string]any{"source": "database"})
	}
}

// Error forwards GORM errors to the core logger
func (l *QueryLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		l.core.Error(msg, map[string]any{"source": "database"})
	}
}

// Trace reports each statement once it finishes. Failures and slow
// statements are promoted; everything else stays at debug so the info
// stream remains readable under load.
func (l *QueryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := map[string]any{
		"elapsed": elapsed.String(),
		"rows":    rows,
		"sql":     sql,
		"source":  "database",
	}
	if verb, table := statementShape(sql); verb != "" {
		fields["type"] = verb
		if table != "" {
			fields["table"] = table
		}
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	switch {
	case err != nil && l.level >= logger.Error:
		l.core.Error("SQL Error", fields)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		l.core.Warn("Slow SQL Query", fields)
	case l.level >= logger.Info:
		l.core.Debug("SQL Query", fields)
	}
}

// statementShape pulls the verb and target table out of a statement, enough
// for log filtering. It only understands the shapes GORM generates.
func statementShape(sql string) (string, string) {
	tokens := strings.Fields(strings.ToUpper(sql))
	if len(tokens) < 2 {
		return "", ""
	}

	var marker string
	switch tokens[0] {
	case "SELECT", "DELETE":
		marker = "FROM"
	case "INSERT":
		marker = "INTO"
	case "UPDATE":
		return tokens[0], strings.Trim(tokens[1], `"`)
	default:
		return "", ""
	}

	for i := 1; i < len(tokens)-1; i++ {
		if tokens[i] == marker {
			return tokens[0], strings.Trim(tokens[i+1], `"`)
		}
	}
	return tokens[0], ""
}
