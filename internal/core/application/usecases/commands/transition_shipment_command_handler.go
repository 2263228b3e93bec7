package commands

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/ports"
)

// TransitionShipmentResult reports the outcome of a transition request.
// Changed is false for an accepted re-scan that left the shipment untouched.
type TransitionShipmentResult struct {
	ShipmentID     kernel.UUID
	AWB            string
	PreviousStatus shipment.Status
	NewStatus      shipment.Status
	Changed        bool
}

// TransitionShipmentCommandHandler applies lifecycle transitions.
// The status change, its timestamp and its audit record commit atomically;
// a failed audit write rolls the transition back. The status-changed event
// is published after commit and never blocks the transition.
type TransitionShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	auditSink  ports.AuditSink
	publisher  ports.StatusEventPublisher
	logger     *slog.Logger
}

// NewTransitionShipmentCommandHandler creates a handler for shipment
// lifecycle transitions.
func NewTransitionShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	auditSink ports.AuditSink,
	publisher ports.StatusEventPublisher,
	logger *slog.Logger,
) TransitionShipmentCommandHandler {
	return TransitionShipmentCommandHandler{
		uowFactory: uowFactory,
		auditSink:  auditSink,
		publisher:  publisher,
		logger:     logger.With("component", "transition-handler"),
	}
}

// Handle moves the shipment to the command's target status.
// Returns IllegalTransitionError when the state machine forbids the step and
// ObjectNotFoundError for unknown AWBs. A re-scan to the current status in a
// hub or delivery stage is accepted as a no-op without refreshing the
// shipment's last status change timestamp.
func (h TransitionShipmentCommandHandler) Handle(
	ctx context.Context,
	command TransitionShipmentCommand,
) (TransitionShipmentResult, error) {
	if err := command.Validate(); err != nil {
		return TransitionShipmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionShipmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()

	tracked, err := repo.GetByAWB(ctx, command.AWB())
	if err != nil {
		return TransitionShipmentResult{}, err
	}

	now := time.Now().UTC()
	previous, changed, err := tracked.TransitionTo(command.Target(), now)
	if err != nil {
		return TransitionShipmentResult{}, err
	}

	if changed {
		if err = repo.Update(ctx, tracked); err != nil {
			return TransitionShipmentResult{}, err
		}

		record := ports.AuditRecord{
			ID:         kernel.NewUUID(),
			ActorID:    command.ActorID(),
			EntityType: "shipment",
			EntityID:   tracked.AWB().String(),
			Action:     "status_transition",
			OldValue:   previous.String(),
			NewValue:   tracked.Status().String(),
		}
		if err = h.auditSink.Append(ctx, record); err != nil {
			return TransitionShipmentResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionShipmentResult{}, err
	}

	if changed {
		event := ports.StatusChangedEvent{
			AWB:            tracked.AWB().String(),
			PreviousStatus: previous.String(),
			NewStatus:      tracked.Status().String(),
			ActorID:        command.ActorID(),
			OccurredAt:     now,
		}
		if err = h.publisher.PublishStatusChanged(ctx, event); err != nil {
			h.logger.Warn("status event publish failed",
				"awb", event.AWB, "error", err)
		}
	}

	return TransitionShipmentResult{
		ShipmentID:     tracked.ID(),
		AWB:            tracked.AWB().String(),
		PreviousStatus: previous,
		NewStatus:      tracked.Status(),
		Changed:        changed,
	}, nil
}
