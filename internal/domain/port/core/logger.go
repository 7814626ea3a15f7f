package core

// LogLevel orders logging severities from most to least verbose
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// Logger is the structured logging port. Fields carry the structured
// context for a message and may be nil.
type Logger interface {
	// SetLevel changes the minimum level that gets written
	SetLevel(level LogLevel)
	// GetLevel reports the current minimum level
	GetLevel() LogLevel
	// Debug writes a debug message
	Debug(message string, fields map[string]any)
	// Info writes an informational message
	Info(message string, fields map[string]any)
	// Warn writes a warning
	Warn(message string, fields map[string]any)
	// Error writes an error message
	Error(message string, fields map[string]any)
	// Flush forces buffered entries out before shutdown
	Flush() error
}
