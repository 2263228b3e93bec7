package commands

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/manifest"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// OutboundScanResult reports an outbound scan per item. ManifestNumber is set
// when the scan dispatched a manifest.
type OutboundScanResult struct {
	ManifestNumber string
	Items          []ScanItemResult
}

// OutboundScanCommandHandler processes parcels leaving a hub. Each scanned
// item commits in its own transaction so a parcel in an incompatible status
// fails alone; the rest of the batch still moves. The manifest dispatch, if
// any, commits first and is all-or-nothing.
type OutboundScanCommandHandler struct {
	uowFactory UoWFactory
	auditSink  ports.AuditSink
	publisher  ports.StatusEventPublisher
	logger     *slog.Logger
}

// NewOutboundScanCommandHandler creates a handler for outbound hub scans.
func NewOutboundScanCommandHandler(
	uowFactory UoWFactory,
	auditSink ports.AuditSink,
	publisher ports.StatusEventPublisher,
	logger *slog.Logger,
) OutboundScanCommandHandler {
	return OutboundScanCommandHandler{
		uowFactory: uowFactory,
		auditSink:  auditSink,
		publisher:  publisher,
		logger:     logger.With("component", "outbound-scan-handler"),
	}
}

// Handle dispatches the referenced manifest (when a number is given) and
// transitions every scanned shipment. A rider handover moves items to
// out_for_delivery; a hub transfer moves them to in_transit. Items without
// any destination fall back to their latest sort decision and fail
// individually when none exists.
func (h OutboundScanCommandHandler) Handle(
	ctx context.Context,
	command OutboundScanCommand,
) (OutboundScanResult, error) {
	if err := command.Validate(); err != nil {
		return OutboundScanResult{}, err
	}

	now := time.Now().UTC()
	awbs := command.AWBs()
	destinationHub := command.DestinationHub()
	riderID := command.RiderID()

	var result OutboundScanResult
	if command.ManifestNumber() != "" {
		dispatched, err := h.dispatchManifest(ctx, command, now)
		if err != nil {
			return OutboundScanResult{}, err
		}
		result.ManifestNumber = dispatched.Number()
		if len(awbs) == 0 {
			awbs = dispatched.ExpectedAWBs()
		}
		if destinationHub == nil && riderID == nil {
			destinationHub = dispatched.DestinationHub()
			riderID = dispatched.RiderID()
		}
	}

	for _, awb := range awbs {
		result.Items = append(result.Items, h.scanItem(ctx, command, awb, destinationHub, riderID, now))
	}

	return result, nil
}

// dispatchManifest moves the referenced manifest to dispatched status in its
// own transaction. A manifest that already left its hub rejects the scan.
func (h OutboundScanCommandHandler) dispatchManifest(
	ctx context.Context,
	command OutboundScanCommand,
	now time.Time,
) (*manifest.Manifest, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	manifestRepo := uow.ManifestRepository()

	dispatched, err := manifestRepo.GetByNumber(ctx, command.ManifestNumber())
	if err != nil {
		return nil, err
	}
	if err = dispatched.Dispatch(); err != nil {
		return nil, err
	}
	if err = manifestRepo.Update(ctx, dispatched); err != nil {
		return nil, err
	}

	record := ports.AuditRecord{
		ID:         kernel.NewUUID(),
		ActorID:    command.ActorID(),
		EntityType: "manifest",
		EntityID:   dispatched.Number(),
		Action:     "manifest_dispatched",
		OldValue:   manifest.Created.String(),
		NewValue:   dispatched.Status().String(),
		Context:    map[string]string{"originHub": command.OriginHub()},
	}
	if err = h.auditSink.Append(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return dispatched, nil
}

// scanItem transitions a single shipment inside its own unit of work and
// reports the outcome. Failures roll back that item only.
func (h OutboundScanCommandHandler) scanItem(
	ctx context.Context,
	command OutboundScanCommand,
	awb kernel.AWB,
	destinationHub *string,
	riderID *kernel.UUID,
	now time.Time,
) ScanItemResult {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return newScanItemFailure(awb.String(), err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tracked, err := uow.ShipmentRepository().GetByAWB(ctx, awb)
	if err != nil {
		return newScanItemFailure(awb.String(), err)
	}

	target := shipment.InTransit
	itemDestination := destinationHub
	if riderID != nil {
		target = shipment.OutForDelivery
	} else if itemDestination == nil {
		decision, decisionErr := uow.ManifestRepository().LatestSortDecision(ctx, awb)
		if decisionErr != nil {
			return newScanItemFailure(awb.String(), errs.NewValueIsRequiredErrorWithCause("destinationHub", decisionErr))
		}
		hub := decision.DestinationHub()
		itemDestination = &hub
	}

	previous, changed, err := tracked.TransitionTo(target, now)
	if err != nil {
		return newScanItemFailure(awb.String(), err)
	}

	// A re-scan in the same status stays a pure no-op: no version bump, no
	// audit record, no event.
	if changed {
		if riderID != nil {
			err = tracked.AssignRider(*riderID)
		} else {
			err = tracked.MoveToHub(command.OriginHub())
		}
		if err != nil {
			return newScanItemFailure(awb.String(), err)
		}

		if err = uow.ShipmentRepository().Update(ctx, tracked); err != nil {
			return newScanItemFailure(awb.String(), err)
		}

		auditContext := map[string]string{"originHub": command.OriginHub()}
		if itemDestination != nil {
			auditContext["destinationHub"] = *itemDestination
		}
		if riderID != nil {
			auditContext["riderId"] = riderID.String()
		}
		record := ports.AuditRecord{
			ID:         kernel.NewUUID(),
			ActorID:    command.ActorID(),
			EntityType: "shipment",
			EntityID:   tracked.AWB().String(),
			Action:     "outbound_scan",
			OldValue:   previous.String(),
			NewValue:   tracked.Status().String(),
			Context:    auditContext,
		}
		if err = h.auditSink.Append(ctx, record); err != nil {
			return newScanItemFailure(awb.String(), err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return newScanItemFailure(awb.String(), err)
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
			h.logger.Warn("status event publish failed", "awb", event.AWB, "error", err)
		}
	}

	return newScanItemSuccess(tracked.AWB().String(), previous, tracked.Status())
}
