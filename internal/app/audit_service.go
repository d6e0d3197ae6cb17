package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"
	"github.com/google/uuid"
)

// auditService implements the AuditService interface
type auditService struct {
	repository gateway.OperationRepository
	now        func() time.Time
	logger     logger.Logger
}

// NewAuditService creates a new auditService instance
func NewAuditService(repository gateway.OperationRepository, logger logger.Logger) (gateway.AuditService, error) {
	if repository == nil {
		return nil, fmt.Errorf("an operation repository is required")
	}
	return &auditService{
		repository: repository,
		now:        time.Now,
		logger:     logger,
	}, nil
}

// Record fills in the id and timestamp when missing, validates the record and stores it.
func (s *auditService) Record(ctx context.Context, record *gateway.OperationRecord) error {
	if record == nil {
		return fmt.Errorf("operation record is nil")
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.DateTimeCreated.IsZero() {
		record.DateTimeCreated = s.now().UTC()
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid operation record: %w", err)
	}

	if err := s.repository.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to store operation record: %w", err)
	}
	return nil
}

// List returns the records matching query.
func (s *auditService) List(ctx context.Context, query *gateway.OperationQuery) ([]*gateway.OperationRecord, error) {
	if query == nil {
		query = gateway.NewOperationQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid operation query: %w", err)
	}

	records, err := s.repository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list operation records: %w", err)
	}
	return records, nil
}

// Prune removes every record created before now minus retention.
func (s *auditService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("retention must be positive")
	}

	removed, err := s.repository.DeleteOlderThan(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("failed to prune operation records: %w", err)
	}
	if removed > 0 {
		s.logger.Info("Pruned ", removed, " operation records")
	}
	return removed, nil
}
