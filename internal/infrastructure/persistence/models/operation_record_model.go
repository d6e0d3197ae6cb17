package models

import (
	"time"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
)

// OperationRecordModel is the GORM database model for audit entries
type OperationRecordModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	Variant         string    `gorm:"not null;index;type:varchar(50)"`
	Operation       string    `gorm:"not null;type:varchar(50)"`
	InputSize       int       `gorm:"type:integer"`
	OutputSize      int       `gorm:"type:integer"`
	Outcome         string    `gorm:"not null;index;type:varchar(10)"`
	ErrorKind       string    `gorm:"type:varchar(50)"`
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (OperationRecordModel) TableName() string {
	return "operation_records"
}

// ToDomain converts GORM model to domain entity
func (m *OperationRecordModel) ToDomain() *gateway.OperationRecord {
	return &gateway.OperationRecord{
		ID:              m.ID,
		Variant:         m.Variant,
		Operation:       m.Operation,
		InputSize:       m.InputSize,
		OutputSize:      m.OutputSize,
		Outcome:         m.Outcome,
		ErrorKind:       m.ErrorKind,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *OperationRecordModel) FromDomain(r *gateway.OperationRecord) {
	m.ID = r.ID
	m.Variant = r.Variant
	m.Operation = r.Operation
	m.InputSize = r.InputSize
	m.OutputSize = r.OutputSize
	m.Outcome = r.Outcome
	m.ErrorKind = r.ErrorKind
	m.DateTimeCreated = r.DateTimeCreated
}
