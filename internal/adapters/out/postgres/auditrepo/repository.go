package auditrepo

import (
	"context"

	"parceltrack/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAuditSink implements AuditSink using GORM. Appends are idempotent on
// the record ID: a conflicting insert is a no-op, which makes the sink safe
// for at-least-once delivery from the violation queue.
type GormAuditSink struct {
	db *gorm.DB
}

// NewGormAuditSink creates a new GORM audit sink.
func NewGormAuditSink(db *gorm.DB) *GormAuditSink {
	return &GormAuditSink{db: db}
}

// Append writes one audit record. A record whose ID already exists is
// silently skipped; any other failure is returned to the caller.
func (s *GormAuditSink) Append(ctx context.Context, record ports.AuditRecord) error {
	if err := record.ID.Validate(); err != nil {
		return err
	}

	dto := fromPort(record)
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}
