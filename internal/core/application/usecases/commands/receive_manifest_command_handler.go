package commands

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/manifest"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/ports"
)

// ReceiveManifestResult reports the reconciliation outcome: the manifest's
// terminal status, the per-item scan results for everything physically
// received, and the discrepancy lists.
type ReceiveManifestResult struct {
	ManifestNumber string
	ManifestStatus manifest.Status
	Items          []ScanItemResult
	ShortShipped   []string
	OverReceived   []string
}

// ReceiveManifestCommandHandler reconciles manifests at their destination.
// The manifest's own reconciliation commits first and is authoritative; each
// received parcel then moves into the hub in its own transaction. Physical
// custody wins over paperwork: over-received parcels transfer too, while a
// parcel whose state machine rejects the hub scan fails alone and the
// receipt still completes.
type ReceiveManifestCommandHandler struct {
	uowFactory UoWFactory
	auditSink  ports.AuditSink
	publisher  ports.StatusEventPublisher
	logger     *slog.Logger
}

// NewReceiveManifestCommandHandler creates a handler for manifest receipt.
func NewReceiveManifestCommandHandler(
	uowFactory UoWFactory,
	auditSink ports.AuditSink,
	publisher ports.StatusEventPublisher,
	logger *slog.Logger,
) ReceiveManifestCommandHandler {
	return ReceiveManifestCommandHandler{
		uowFactory: uowFactory,
		auditSink:  auditSink,
		publisher:  publisher,
		logger:     logger.With("component", "receive-manifest-handler"),
	}
}

// Handle receives the manifest and moves every physically present parcel into
// the hub. Receiving an already-reconciled manifest fails with
// AlreadyReceivedError before anything changes.
func (h ReceiveManifestCommandHandler) Handle(
	ctx context.Context,
	command ReceiveManifestCommand,
) (ReceiveManifestResult, error) {
	if err := command.Validate(); err != nil {
		return ReceiveManifestResult{}, err
	}

	now := time.Now().UTC()

	received, reconciliation, err := h.reconcileManifest(ctx, command, now)
	if err != nil {
		return ReceiveManifestResult{}, err
	}

	result := ReceiveManifestResult{
		ManifestNumber: received.Number(),
		ManifestStatus: received.Status(),
	}
	for _, awb := range reconciliation.ShortShipped {
		result.ShortShipped = append(result.ShortShipped, awb.String())
	}
	for _, awb := range reconciliation.OverReceived {
		result.OverReceived = append(result.OverReceived, awb.String())
	}

	present := append(reconciliation.Matched, reconciliation.OverReceived...)
	for _, awb := range present {
		result.Items = append(result.Items, h.receiveItem(ctx, command, received.Number(), awb, now))
	}

	return result, nil
}

// reconcileManifest applies the set-difference reconciliation and commits the
// manifest's terminal status together with its audit trail, the per-AWB
// short-shipment records included, in one transaction. A failed audit write
// rolls the whole receipt back.
func (h ReceiveManifestCommandHandler) reconcileManifest(
	ctx context.Context,
	command ReceiveManifestCommand,
	now time.Time,
) (*manifest.Manifest, manifest.Reconciliation, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, manifest.Reconciliation{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	manifestRepo := uow.ManifestRepository()

	received, err := manifestRepo.Get(ctx, command.ManifestID())
	if err != nil {
		return nil, manifest.Reconciliation{}, err
	}

	previousStatus := received.Status()
	reconciliation, err := received.Receive(command.ReceivedAWBs(), now)
	if err != nil {
		return nil, manifest.Reconciliation{}, err
	}

	if err = manifestRepo.Update(ctx, received); err != nil {
		return nil, manifest.Reconciliation{}, err
	}

	record := ports.AuditRecord{
		ID:         kernel.NewUUID(),
		ActorID:    command.ActorID(),
		EntityType: "manifest",
		EntityID:   received.Number(),
		Action:     "manifest_received",
		OldValue:   previousStatus.String(),
		NewValue:   received.Status().String(),
		Context: map[string]string{
			"hubLocation":  command.HubLocation(),
			"shortShipped": joinAWBs(reconciliation.ShortShipped),
			"overReceived": joinAWBs(reconciliation.OverReceived),
		},
	}
	if err = h.auditSink.Append(ctx, record); err != nil {
		return nil, manifest.Reconciliation{}, err
	}

	for _, awb := range reconciliation.ShortShipped {
		shortShipped := ports.AuditRecord{
			ID:         kernel.NewUUID(),
			ActorID:    command.ActorID(),
			EntityType: "shipment",
			EntityID:   awb.String(),
			Action:     "manifest_short_shipped",
			Context: map[string]string{
				"manifestNumber": received.Number(),
				"hubLocation":    command.HubLocation(),
			},
		}
		if err = h.auditSink.Append(ctx, shortShipped); err != nil {
			return nil, manifest.Reconciliation{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, manifest.Reconciliation{}, err
	}

	return received, reconciliation, nil
}

// receiveItem moves one physically present parcel into the receiving hub
// inside its own unit of work.
func (h ReceiveManifestCommandHandler) receiveItem(
	ctx context.Context,
	command ReceiveManifestCommand,
	manifestNumber string,
	awb kernel.AWB,
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

	previous, changed, err := tracked.TransitionTo(shipment.InHub, now)
	if err != nil {
		return newScanItemFailure(awb.String(), err)
	}
	if err = tracked.MoveToHub(command.HubLocation()); err != nil {
		return newScanItemFailure(awb.String(), err)
	}

	if err = uow.ShipmentRepository().Update(ctx, tracked); err != nil {
		return newScanItemFailure(awb.String(), err)
	}

	if changed {
		record := ports.AuditRecord{
			ID:         kernel.NewUUID(),
			ActorID:    command.ActorID(),
			EntityType: "shipment",
			EntityID:   tracked.AWB().String(),
			Action:     "inbound_scan",
			OldValue:   previous.String(),
			NewValue:   tracked.Status().String(),
			Context: map[string]string{
				"manifestNumber": manifestNumber,
				"hubLocation":    command.HubLocation(),
			},
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

func joinAWBs(awbs []kernel.AWB) string {
	out := ""
	for i, awb := range awbs {
		if i > 0 {
			out += ","
		}
		out += awb.String()
	}
	return out
}
