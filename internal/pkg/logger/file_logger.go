package logger

import (
	"log/slog"

	"github.com/natefinch/lumberjack"
)

// FileLogger writes slog JSON records to a file rotated by lumberjack.
type FileLogger struct {
	slogLogger
	writer *lumberjack.Logger
}

// NewFileLogger creates a file logger; maxSize is in megabytes, maxAge in days.
func NewFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) Logger {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: parseLevel(level)})
	return &FileLogger{
		slogLogger: newSlogLogger(handler, func() { _ = writer.Close() }),
		writer:     writer,
	}
}
