//go:build integration
// +build integration

package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	record := CreateTestRecord(t, "SHA-256", "compute", time.Now().UTC())
	require.NoError(t, ctx.OperationRepo.Create(context.Background(), record))

	var stored models.OperationRecordModel
	require.NoError(t, ctx.DB.First(&stored, "id = ?", record.ID).Error)
	assert.Equal(t, record.Variant, stored.Variant)
	assert.Equal(t, record.OutputSize, stored.OutputSize)
}

func TestOperationSqliteRepository_CreateRejectsInvalidRecord(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	record := CreateTestRecord(t, "SHA-256", "compute", time.Now().UTC())
	record.Outcome = "maybe"

	err := ctx.OperationRepo.Create(context.Background(), record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
}

func TestOperationSqliteRepository_GetByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	record := CreateTestRecord(t, "Ed25519", "verify", time.Now().UTC())
	require.NoError(t, ctx.OperationRepo.Create(context.Background(), record))

	fetched, err := ctx.OperationRepo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, fetched.ID)
	assert.Equal(t, "verify", fetched.Operation)

	_, err = ctx.OperationRepo.GetByID(context.Background(), "00000000-0000-4000-8000-000000000000")
	assert.True(t, errors.Is(err, ErrRecordNotFound))
}

func TestOperationSqliteRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	now := time.Now().UTC()

	require.NoError(t, ctx.OperationRepo.Create(context.Background(), CreateTestRecord(t, "SHA-256", "compute", now.Add(-2*time.Minute))))
	require.NoError(t, ctx.OperationRepo.Create(context.Background(), CreateTestRecord(t, "SHA-256", "session_finalize", now.Add(-time.Minute))))
	failed := CreateTestRecord(t, "AES-256-GCM", "compute", now)
	failed.Outcome = "failure"
	failed.ErrorKind = gateway.KindCryptoOperationFailed.String()
	require.NoError(t, ctx.OperationRepo.Create(context.Background(), failed))

	tests := []struct {
		name  string
		query *gateway.OperationQuery
		want  int
	}{
		{"all", gateway.NewOperationQuery(), 3},
		{"by variant", &gateway.OperationQuery{Variant: "SHA-256"}, 2},
		{"by operation", &gateway.OperationQuery{Operation: "compute"}, 2},
		{"by outcome", &gateway.OperationQuery{Outcome: "failure"}, 1},
		{"limited", &gateway.OperationQuery{Limit: 1}, 1},
		{"offset", &gateway.OperationQuery{Limit: 10, Offset: 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ctx.OperationRepo.List(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
		})
	}

	t.Run("newest first", func(t *testing.T) {
		records, err := ctx.OperationRepo.List(context.Background(), gateway.NewOperationQuery())
		require.NoError(t, err)
		require.NotEmpty(t, records)
		assert.Equal(t, failed.ID, records[0].ID)
	})
}

func TestOperationSqliteRepository_DeleteOlderThan(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	now := time.Now().UTC()

	old := CreateTestRecord(t, "MD5", "compute", now.Add(-48*time.Hour))
	recent := CreateTestRecord(t, "MD5", "compute", now)
	require.NoError(t, ctx.OperationRepo.Create(context.Background(), old))
	require.NoError(t, ctx.OperationRepo.Create(context.Background(), recent))

	removed, err := ctx.OperationRepo.DeleteOlderThan(context.Background(), now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	records, err := ctx.OperationRepo.List(context.Background(), gateway.NewOperationQuery())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, recent.ID, records[0].ID)
}
