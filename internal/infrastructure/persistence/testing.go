//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/config"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testPostgresDSN      = "user=postgres password=postgres host=localhost port=5432 sslmode=disable"
	testPostgresAdminDSN = "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB            *gorm.DB
	OperationRepo gateway.OperationRepository
}

// SetupTestDB opens a migrated database of dbType and registers its cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  testPostgresDSN,
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			_ = DropDatabase(testPostgresAdminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	logger := testutil.SetupTestLogger(t)
	operationRepo, err := NewGormOperationRepository(db, logger)
	require.NoError(t, err, "Failed to create operation repository")

	return &TestContext{
		DB:            db,
		OperationRepo: operationRepo,
	}
}

// CreateTestRecord builds a successful record for variant created at createdAt
func CreateTestRecord(t *testing.T, variant, operation string, createdAt time.Time) *gateway.OperationRecord {
	t.Helper()

	return &gateway.OperationRecord{
		ID:              uuid.NewString(),
		Variant:         variant,
		Operation:       operation,
		InputSize:       64,
		OutputSize:      32,
		Outcome:         "success",
		DateTimeCreated: createdAt,
	}
}
