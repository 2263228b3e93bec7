package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/manifest"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// CreateManifestResult reports the identity of a freshly created manifest.
type CreateManifestResult struct {
	ManifestID     kernel.UUID
	ManifestNumber string
	Status         manifest.Status
}

// CreateManifestCommandHandler builds manifests after verifying that every
// declared AWB exists and sits in a consolidatable status. Unlike scans,
// manifest creation is all-or-nothing: one bad AWB rejects the whole batch.
type CreateManifestCommandHandler struct {
	uowFactory UoWFactory
	auditSink  ports.AuditSink
}

// NewCreateManifestCommandHandler creates a handler for manifest creation.
func NewCreateManifestCommandHandler(uowFactory UoWFactory, auditSink ports.AuditSink) CreateManifestCommandHandler {
	return CreateManifestCommandHandler{
		uowFactory: uowFactory,
		auditSink:  auditSink,
	}
}

// Handle validates the declared AWBs and persists the manifest in created
// status. AWBs that are unknown or not currently in a hub or picked up are
// collected and reported together via InvalidManifestContentsError.
func (h CreateManifestCommandHandler) Handle(
	ctx context.Context,
	command CreateManifestCommand,
) (CreateManifestResult, error) {
	if err := command.Validate(); err != nil {
		return CreateManifestResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateManifestResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	var offending []string
	for _, awb := range command.AWBs() {
		tracked, err := shipmentRepo.GetByAWB(ctx, awb)
		if err != nil {
			offending = append(offending, awb.String())
			continue
		}
		if !tracked.Status().IsConsolidatable() {
			offending = append(offending, awb.String())
		}
	}
	if len(offending) > 0 {
		return CreateManifestResult{}, errs.NewInvalidManifestContentsError(offending)
	}

	now := time.Now().UTC()
	created, err := manifest.NewManifest(
		kernel.NewUUID(),
		manifest.NewManifestNumber(now),
		command.OriginHub(),
		command.DestinationHub(),
		command.AWBs(),
		command.RiderID(),
		command.Notes(),
		now,
	)
	if err != nil {
		return CreateManifestResult{}, err
	}

	if err = uow.ManifestRepository().Add(ctx, created); err != nil {
		return CreateManifestResult{}, err
	}

	record := ports.AuditRecord{
		ID:         kernel.NewUUID(),
		ActorID:    command.ActorID(),
		EntityType: "manifest",
		EntityID:   created.Number(),
		Action:     "manifest_created",
		NewValue:   created.Status().String(),
		Context:    map[string]string{"originHub": created.OriginHub()},
	}
	if err = h.auditSink.Append(ctx, record); err != nil {
		return CreateManifestResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateManifestResult{}, err
	}

	return CreateManifestResult{
		ManifestID:     created.ID(),
		ManifestNumber: created.Number(),
		Status:         created.Status(),
	}, nil
}
