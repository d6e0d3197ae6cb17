package logger

import (
	"io"
	"log/slog"
	"os"
)

// ConsoleLogger writes slog text records to stdout.
type ConsoleLogger struct {
	slogLogger
}

// NewConsoleLogger creates a console logger writing to stdout at the given level.
func NewConsoleLogger(level string) Logger {
	return newConsoleLogger(os.Stdout, level)
}

func newConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &ConsoleLogger{slogLogger: newSlogLogger(handler, nil)}
}
