package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"

	"gorm.io/gorm"
)

// ErrRecordNotFound is returned by GetByID for an unknown id.
var ErrRecordNotFound = errors.New("operation record not found")

type gormOperationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormOperationRepository creates a new GORM-based OperationRepository implementation
func NewGormOperationRepository(db *gorm.DB, logger logger.Logger) (gateway.OperationRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &gormOperationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormOperationRepository) Create(ctx context.Context, record *gateway.OperationRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.OperationRecordModel{}
	model.FromDomain(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create operation record: %w", err)
	}

	r.logger.Debug("Created operation record with id ", record.ID)
	return nil
}

func (r *gormOperationRepository) List(ctx context.Context, query *gateway.OperationQuery) ([]*gateway.OperationRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.OperationRecordModel
	dbQuery := r.db.WithContext(ctx).Model(&models.OperationRecordModel{})

	if query.Variant != "" {
		dbQuery = dbQuery.Where("variant = ?", query.Variant)
	}
	if query.Operation != "" {
		dbQuery = dbQuery.Where("operation = ?", query.Operation)
	}
	if query.Outcome != "" {
		dbQuery = dbQuery.Where("outcome = ?", query.Outcome)
	}
	if !query.DateTimeCreated.IsZero() {
		dbQuery = dbQuery.Where("date_time_created >= ?", query.DateTimeCreated)
	}

	// SortBy and SortOrder are restricted to fixed identifiers by Validate
	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch operation records: %w", err)
	}

	records := make([]*gateway.OperationRecord, len(modelList))
	for i, model := range modelList {
		records[i] = model.ToDomain()
	}
	return records, nil
}

func (r *gormOperationRepository) GetByID(ctx context.Context, id string) (*gateway.OperationRecord, error) {
	var model models.OperationRecordModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch operation record: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormOperationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("date_time_created < ?", cutoff).Delete(&models.OperationRecordModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete operation records: %w", result.Error)
	}

	r.logger.Debug("Deleted ", result.RowsAffected, " operation records older than ", cutoff.Format(time.RFC3339))
	return result.RowsAffected, nil
}
