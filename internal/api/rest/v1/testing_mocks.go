//go:build unit
// +build unit

package v1

import (
	"context"
	"time"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"

	"github.com/stretchr/testify/mock"
)

// MockGatewayService is a mock implementation of GatewayService
type MockGatewayService struct {
	mock.Mock
}

func (m *MockGatewayService) Compute(ctx context.Context, variant gateway.Variant, params *gateway.ParameterSet, input []byte) ([]byte, error) {
	args := m.Called(ctx, variant, params, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockGatewayService) Verify(ctx context.Context, variant gateway.Variant, params *gateway.ParameterSet, input []byte) (bool, error) {
	args := m.Called(ctx, variant, params, input)
	return args.Bool(0), args.Error(1)
}

func (m *MockGatewayService) OpenSession(ctx context.Context, variant gateway.Variant, params *gateway.ParameterSet) (gateway.Session, error) {
	args := m.Called(ctx, variant, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(gateway.Session), args.Error(1)
}

func (m *MockGatewayService) GenerateKeyPair(ctx context.Context, variant gateway.Variant, params *gateway.ParameterSet) (*gateway.KeyPair, error) {
	args := m.Called(ctx, variant, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.KeyPair), args.Error(1)
}

func (m *MockGatewayService) DeriveSharedSecret(ctx context.Context, variant gateway.Variant, privateKey, peerPublicKey []byte) ([]byte, error) {
	args := m.Called(ctx, variant, privateKey, peerPublicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockGatewayService) Variants() []gateway.VariantInfo {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]gateway.VariantInfo)
}

// MockSessionService is a mock implementation of SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Open(ctx context.Context, variant gateway.Variant, params *gateway.ParameterSet) (string, error) {
	args := m.Called(ctx, variant, params)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Update(ctx context.Context, id string, chunk []byte) error {
	args := m.Called(ctx, id, chunk)
	return args.Error(0)
}

func (m *MockSessionService) Finalize(ctx context.Context, id string, length *int) ([]byte, error) {
	args := m.Called(ctx, id, length)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSessionService) Abandon(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionService) Variant(id string) (gateway.Variant, error) {
	args := m.Called(id)
	return args.Get(0).(gateway.Variant), args.Error(1)
}

// MockAuditService is a mock implementation of AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, record *gateway.OperationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditService) List(ctx context.Context, query *gateway.OperationQuery) ([]*gateway.OperationRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*gateway.OperationRecord), args.Error(1)
}

func (m *MockAuditService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}
