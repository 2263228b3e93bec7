// Package auditrepo implements the audit sink port on postgres. The table is
// append-only; the caller-supplied record ID is the primary key, so retried
// writes collapse into the original row.
package auditrepo

import (
	"time"

	"parceltrack/internal/core/ports"

	"github.com/google/uuid"
)

// AuditRecordDTO represents one append-only audit row.
type AuditRecordDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID    string    `gorm:"size:64;not null"`
	EntityType string    `gorm:"size:32;index:idx_audit_entity"`
	EntityID   string    `gorm:"size:64;index:idx_audit_entity"`
	Action     string    `gorm:"size:64;index"`
	OldValue   string
	NewValue   string
	Context    map[string]string `gorm:"serializer:json"`
	CreatedAt  time.Time         `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for audit records.
func (AuditRecordDTO) TableName() string {
	return "audit_records"
}

// fromPort converts a port-level audit record to its database representation.
func fromPort(record ports.AuditRecord) AuditRecordDTO {
	return AuditRecordDTO{
		ID:         record.ID.Bytes(),
		ActorID:    record.ActorID,
		EntityType: record.EntityType,
		EntityID:   record.EntityID,
		Action:     record.Action,
		OldValue:   record.OldValue,
		NewValue:   record.NewValue,
		Context:    record.Context,
	}
}
