package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// slogLogger adapts a *slog.Logger to Logger. Console and file loggers differ
// only in handler and in what must be flushed before exit.
type slogLogger struct {
	logger *slog.Logger
	flush  func()
}

func newSlogLogger(handler slog.Handler, flush func()) slogLogger {
	return slogLogger{logger: slog.New(handler).With("service", serviceName), flush: flush}
}

// Debug logs a debug message.
func (l slogLogger) Debug(args ...interface{}) {
	l.logger.Debug(formatArgs(args...))
}

// Info logs an informational message.
func (l slogLogger) Info(args ...interface{}) {
	l.logger.Info(formatArgs(args...))
}

// Warn logs a warning message.
func (l slogLogger) Warn(args ...interface{}) {
	l.logger.Warn(formatArgs(args...))
}

// Error logs an error message.
func (l slogLogger) Error(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
}

// Fatal logs an error message, flushes the sink and exits.
func (l slogLogger) Fatal(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
	if l.flush != nil {
		l.flush()
	}
	os.Exit(1)
}

// Panic logs an error message and panics with it.
func (l slogLogger) Panic(args ...interface{}) {
	msg := formatArgs(args...)
	l.logger.Error(msg)
	panic(msg)
}

// formatArgs renders args like fmt.Sprint. Byte slices are replaced by their
// length so key material, plaintext and derived secrets never reach a sink.
func formatArgs(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	safe := make([]interface{}, len(args))
	for i, arg := range args {
		if b, ok := arg.([]byte); ok {
			safe[i] = fmt.Sprintf("[%d bytes]", len(b))
			continue
		}
		safe[i] = arg
	}
	return fmt.Sprint(safe...)
}
