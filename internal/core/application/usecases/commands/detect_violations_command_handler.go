package commands

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// DetectViolationsResult reports one sweep: how many violations were found
// and how many jobs reached the queue.
type DetectViolationsResult struct {
	Detected int
	Enqueued int
}

// DetectViolationsCommandHandler runs the periodic SLA sweep. The sweep is
// read-only over shipments: scanning collects overdue candidates for every
// violation type first, then dispatching enqueues one job per violation.
// A store read failure aborts the whole cycle before anything is enqueued;
// the next sweep re-detects whatever this one missed.
type DetectViolationsCommandHandler struct {
	uowFactory ShipmentUoWFactory
	inspector  services.SLAInspector
	queue      ports.ViolationQueue
	logger     *slog.Logger
}

// NewDetectViolationsCommandHandler creates a handler for SLA sweeps.
func NewDetectViolationsCommandHandler(
	uowFactory ShipmentUoWFactory,
	inspector services.SLAInspector,
	queue ports.ViolationQueue,
	logger *slog.Logger,
) DetectViolationsCommandHandler {
	return DetectViolationsCommandHandler{
		uowFactory: uowFactory,
		inspector:  inspector,
		queue:      queue,
		logger:     logger.With("component", "sla-detector"),
	}
}

// Handle executes one sweep across all violation types.
// Returns DetectionCycleAbortedError when a candidate read fails; partial
// enqueue failures surface as an error after the successfully enqueued jobs
// are already on the queue, which at-least-once delivery tolerates.
func (h DetectViolationsCommandHandler) Handle(
	ctx context.Context,
	command DetectViolationsCommand,
) (DetectViolationsResult, error) {
	if err := command.Validate(); err != nil {
		return DetectViolationsResult{}, err
	}

	now := time.Now().UTC()
	repo := h.uowFactory.Create().ShipmentRepository()

	var detected []services.Violation
	for _, violationType := range services.AllViolationTypes() {
		candidates, err := repo.FindByStatusOlderThan(
			ctx,
			h.inspector.StatusesFor(violationType),
			h.inspector.CutoffFor(violationType, now),
		)
		if err != nil {
			return DetectViolationsResult{}, errs.NewDetectionCycleAbortedError(string(violationType), err)
		}

		violations, err := h.inspector.Inspect(violationType, candidates, now)
		if err != nil {
			return DetectViolationsResult{}, errs.NewDetectionCycleAbortedError(string(violationType), err)
		}
		detected = append(detected, violations...)
	}

	result := DetectViolationsResult{Detected: len(detected)}
	for _, violation := range detected {
		job := ports.ViolationJob{
			ID:        kernel.NewUUID(),
			Violation: violation,
		}
		if err := h.queue.Enqueue(ctx, job); err != nil {
			h.logger.Error("violation enqueue failed",
				"awb", violation.AWB.String(), "type", string(violation.Type), "error", err)
			return result, err
		}
		result.Enqueued++
	}

	h.logger.Info("sla sweep finished",
		"detected", result.Detected, "enqueued", result.Enqueued)

	return result, nil
}
