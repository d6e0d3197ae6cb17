//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileLoggerSettings(mutate func(s *LoggerSettings)) *LoggerSettings {
	s := &LoggerSettings{
		LogLevel:   LogLevelInfo,
		LogType:    LogTypeFile,
		FilePath:   "/var/log/crypto-gateway/gateway.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
	if mutate != nil {
		mutate(s)
	}
	return s
}

func TestLoggerSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings *LoggerSettings
		errMsg   string
	}{
		{"console info", &LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeConsole}, ""},
		{"console critical", &LoggerSettings{LogLevel: LogLevelCritical, LogType: LogTypeConsole}, ""},
		{"file defaults", fileLoggerSettings(nil), ""},
		{"file at rotation ceilings", fileLoggerSettings(func(s *LoggerSettings) {
			s.MaxSize, s.MaxBackups, s.MaxAge = MaxLogFileSizeMB, MaxLogBackups, MaxLogAgeDays
		}), ""},
		{"unknown level", &LoggerSettings{LogLevel: "trace", LogType: LogTypeConsole}, "LogLevel"},
		{"missing type", &LoggerSettings{LogLevel: LogLevelDebug}, "LogType"},
		{"file without path", fileLoggerSettings(func(s *LoggerSettings) { s.FilePath = "" }), "file path"},
		{"file size over ceiling", fileLoggerSettings(func(s *LoggerSettings) { s.MaxSize = MaxLogFileSizeMB + 1 }), "max size"},
		{"file without backups", fileLoggerSettings(func(s *LoggerSettings) { s.MaxBackups = 0 }), "max backups"},
		{"file age over ceiling", fileLoggerSettings(func(s *LoggerSettings) { s.MaxAge = MaxLogAgeDays + 1 }), "max age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

// Rotation fields only matter for the file sink; a console config carrying
// stale or out-of-range values must still load.
func TestLoggerSettingsValidate_ConsoleSkipsRotation(t *testing.T) {
	settings := fileLoggerSettings(func(s *LoggerSettings) {
		s.LogType = LogTypeConsole
		s.FilePath = ""
		s.MaxSize = MaxLogFileSizeMB * 10
		s.MaxBackups = -1
		s.MaxAge = 0
	})

	assert.NoError(t, settings.Validate())

	settings.LogType = LogTypeFile
	assert.Error(t, settings.Validate())
}
