//go:build integration
// +build integration

package app

import (
	"testing"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-gateway/internal/infrastructure/persistence"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for integration tests
type TestServices struct {
	Gateway  gateway.GatewayService
	Sessions *SessionRegistry
	Audit    gateway.AuditService

	DBContext *persistence.TestContext
}

// SetupTestServices wires the gateway, the session registry and an audit
// service backed by a database of dbType
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	settings := testutil.FastGatewaySettings()

	dbContext := persistence.SetupTestDB(t, dbType)

	processors, err := cryptography.NewProcessors(settings, logger)
	require.NoError(t, err, "Failed to create processors")

	gatewayService, err := NewGatewayService(processors, logger)
	require.NoError(t, err, "Failed to create GatewayService")

	sessions, err := NewSessionRegistry(gatewayService, settings.Sessions, logger)
	require.NoError(t, err, "Failed to create SessionRegistry")

	auditService, err := NewAuditService(dbContext.OperationRepo, logger)
	require.NoError(t, err, "Failed to create AuditService")

	return &TestServices{
		Gateway:   gatewayService,
		Sessions:  sessions,
		Audit:     auditService,
		DBContext: dbContext,
	}
}
