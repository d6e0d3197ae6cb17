package testutil

import (
	"testing"

	"github.com/MGTheTrain/crypto-gateway/internal/pkg/config"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"
	"github.com/stretchr/testify/require"
)

// SetupTestLogger initializes the singleton console logger at debug level for tests.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelDebug,
		LogType:  config.LogTypeConsole,
	}

	err := logger.InitLogger(settings)
	require.NoError(t, err)

	log, err := logger.GetLogger()
	require.NoError(t, err)

	return log
}

// FastGatewaySettings returns defaults with password-hashing costs lowered so
// tests stay quick.
func FastGatewaySettings() config.GatewaySettings {
	settings := config.DefaultGatewaySettings()
	settings.Argon2.TimeCost = 1
	settings.Argon2.MemoryCost = 8 * 1024
	settings.Argon2.Parallelism = 1
	settings.PBKDF2.Iterations = 1000
	settings.Bcrypt.Cost = 4
	settings.Scrypt.LogN = 10
	return settings
}
