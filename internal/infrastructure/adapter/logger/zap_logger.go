package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/columbia6/time/internal/domain/port/core"
)

// zapLevels maps the port's levels onto zap's
var zapLevels = map[core.LogLevel]zapcore.Level{
	core.LogLevelDebug: zap.DebugLevel,
	core.LogLevelInfo:  zap.InfoLevel,
	core.LogLevelWarn:  zap.WarnLevel,
	core.LogLevelError: zap.ErrorLevel,
}

// ZapLogger implements the Logger port on top of zap
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewZapLogger creates a new zap-based logger. Production gets the JSON
// encoder, development a colored console encoder. The level is held in an
// atomic handle so the config watcher can change it at runtime.
func NewZapLogger(isProduction bool) core.Logger {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)

	var cfg zap.Config
	if isProduction {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg.Level = level
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "message"

	zapLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return &ZapLogger{
		logger: zapLogger,
		level:  level,
	}
}

// SetLevel changes the minimum level that gets written
func (l *ZapLogger) SetLevel(level core.LogLevel) {
	zapLevel, ok := zapLevels[level]
	if !ok {
		zapLevel = zap.InfoLevel
	}
	l.level.SetLevel(zapLevel)
}

// GetLevel reports the current minimum level
func (l *ZapLogger) GetLevel() core.LogLevel {
	current := l.level.Level()
	for coreLevel, zapLevel := range zapLevels {
		if zapLevel == current {
			return coreLevel
		}
	}
	return core.LogLevelInfo
}

// Debug writes a debug message
func (l *ZapLogger) Debug(message string, fields map[string]any) {
	l.logger.Debug(message, structured(fields)...)
}

// Info writes an informational message
func (l *ZapLogger) Info(message string, fields map[string]any) {
	l.logger.Info(message, structured(fields)...)
}

// Warn writes a warning
func (l *ZapLogger) Warn(message string, fields map[string]any) {
	l.logger.Warn(message, structured(fields)...)
}

// Error writes an error message
func (l *ZapLogger) Error(message string, fields map[string]any) {
	l.logger.Error(message, structured(fields)...)
}

// Flush forces buffered entries out before shutdown
func (l *ZapLogger) Flush() error {
	return l.logger.Sync()
}

// structured converts the port's field map into zap fields
func structured(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	zapFields := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zapFields = append(zapFields, zap.Any(key, value))
	}
	return zapFields
}
