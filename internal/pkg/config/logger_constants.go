package config

// Accepted values for LoggerSettings.LogLevel. Critical maps onto the error
// level since slog has nothing above it.
const (
	LogLevelDebug    = "debug"
	LogLevelInfo     = "info"
	LogLevelWarning  = "warning"
	LogLevelError    = "error"
	LogLevelCritical = "critical"
)

// Accepted values for LoggerSettings.LogType.
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Rotation bounds for the file sink.
const (
	MaxLogFileSizeMB = 100
	MaxLogBackups    = 10
	MaxLogAgeDays    = 365
)
