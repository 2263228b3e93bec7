package commands

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// RecordViolationCommandHandler is the escalation worker's core. It writes
// exactly one audit record per violation job, keyed by the job ID, so a
// redelivered job overwrites nothing and duplicates nothing. A failed write
// surfaces as AuditWriteFailedError and the queue redelivers the job.
type RecordViolationCommandHandler struct {
	auditSink ports.AuditSink
	logger    *slog.Logger
}

// NewRecordViolationCommandHandler creates a handler for violation jobs.
func NewRecordViolationCommandHandler(auditSink ports.AuditSink, logger *slog.Logger) RecordViolationCommandHandler {
	return RecordViolationCommandHandler{
		auditSink: auditSink,
		logger:    logger.With("component", "violation-recorder"),
	}
}

// Handle appends the violation's audit record. The record captures the
// breached stage, the allowed SLA and the shipment context observed at
// detection time; shipment state is never touched.
func (h RecordViolationCommandHandler) Handle(ctx context.Context, command RecordViolationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	job := command.Job()
	violation := job.Violation

	auditContext := map[string]string{
		"violationType":      string(violation.Type),
		"allowedSlaHours":    strconv.FormatFloat(violation.AllowedSLA.Hours(), 'f', -1, 64),
		"shipmentId":         violation.ShipmentID.String(),
		"status":             violation.Status.String(),
		"lastStatusChangeAt": violation.LastUpdate.UTC().Format(time.RFC3339),
	}
	if violation.RiderID != nil {
		auditContext["riderId"] = violation.RiderID.String()
	}

	record := ports.AuditRecord{
		ID:         job.ID,
		ActorID:    "sla-detector",
		EntityType: "shipment",
		EntityID:   violation.AWB.String(),
		Action:     "sla_violation_detected",
		Context:    auditContext,
	}
	if err := h.auditSink.Append(ctx, record); err != nil {
		return errs.NewAuditWriteFailedError(job.ID.String(), err)
	}

	h.logger.Info("sla violation recorded",
		"awb", violation.AWB.String(), "type", string(violation.Type))

	return nil
}
