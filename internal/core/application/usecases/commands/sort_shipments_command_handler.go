package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/manifest"
	"parceltrack/internal/core/ports"
)

// SortShipmentsResult reports the sort outcome per item. Sorting is advisory,
// so successful items keep their current status on both sides of the result.
type SortShipmentsResult struct {
	Items []ScanItemResult
}

// SortShipmentsCommandHandler persists advisory sort decisions. Unknown AWBs
// fail individually; everything else records a decision row.
type SortShipmentsCommandHandler struct {
	uowFactory UoWFactory
	auditSink  ports.AuditSink
}

// NewSortShipmentsCommandHandler creates a handler for hub sort scans.
func NewSortShipmentsCommandHandler(uowFactory UoWFactory, auditSink ports.AuditSink) SortShipmentsCommandHandler {
	return SortShipmentsCommandHandler{
		uowFactory: uowFactory,
		auditSink:  auditSink,
	}
}

// Handle records one sort decision per known AWB. No shipment status changes.
func (h SortShipmentsCommandHandler) Handle(
	ctx context.Context,
	command SortShipmentsCommand,
) (SortShipmentsResult, error) {
	if err := command.Validate(); err != nil {
		return SortShipmentsResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SortShipmentsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	manifestRepo := uow.ManifestRepository()
	now := time.Now().UTC()

	var result SortShipmentsResult
	for _, awb := range command.AWBs() {
		tracked, err := shipmentRepo.GetByAWB(ctx, awb)
		if err != nil {
			result.Items = append(result.Items, newScanItemFailure(awb.String(), err))
			continue
		}

		decision, err := manifest.NewSortDecision(
			kernel.NewUUID(),
			awb,
			command.HubLocation(),
			command.DestinationHub(),
			now,
		)
		if err != nil {
			return SortShipmentsResult{}, err
		}
		if err = manifestRepo.AddSortDecision(ctx, decision); err != nil {
			return SortShipmentsResult{}, err
		}

		record := ports.AuditRecord{
			ID:         kernel.NewUUID(),
			ActorID:    command.ActorID(),
			EntityType: "shipment",
			EntityID:   awb.String(),
			Action:     "sort_decision_recorded",
			Context: map[string]string{
				"hubLocation":    command.HubLocation(),
				"destinationHub": command.DestinationHub(),
			},
		}
		if err = h.auditSink.Append(ctx, record); err != nil {
			return SortShipmentsResult{}, err
		}

		result.Items = append(result.Items, newScanItemSuccess(awb.String(), tracked.Status(), tracked.Status()))
	}

	if err := uow.Commit(ctx); err != nil {
		return SortShipmentsResult{}, err
	}

	return result, nil
}
