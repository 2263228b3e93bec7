package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/ports"
)

// BookShipmentResult reports the identity of a freshly booked shipment.
type BookShipmentResult struct {
	ShipmentID kernel.UUID
	AWB        string
	Status     shipment.Status
}

// BookShipmentCommandHandler registers new shipments in the tracking store.
// The booking is audited before the transaction commits, so a shipment never
// exists without its creation trail.
type BookShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	auditSink  ports.AuditSink
}

// NewBookShipmentCommandHandler creates a handler for shipment booking.
func NewBookShipmentCommandHandler(uowFactory ShipmentUoWFactory, auditSink ports.AuditSink) BookShipmentCommandHandler {
	return BookShipmentCommandHandler{
		uowFactory: uowFactory,
		auditSink:  auditSink,
	}
}

// Handle books the shipment described by the command.
// The new aggregate starts in pending status; its AWB must not already exist.
func (h BookShipmentCommandHandler) Handle(ctx context.Context, command BookShipmentCommand) (BookShipmentResult, error) {
	if err := command.Validate(); err != nil {
		return BookShipmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BookShipmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	booked, err := shipment.NewShipment(
		kernel.NewUUID(),
		command.AWB(),
		command.MerchantID(),
		command.CODAmount(),
		command.PickupDeadline(),
		command.DeliveryDeadline(),
		time.Now().UTC(),
	)
	if err != nil {
		return BookShipmentResult{}, err
	}

	if err = uow.ShipmentRepository().Add(ctx, booked); err != nil {
		return BookShipmentResult{}, err
	}

	record := ports.AuditRecord{
		ID:         kernel.NewUUID(),
		ActorID:    command.MerchantID().String(),
		EntityType: "shipment",
		EntityID:   booked.AWB().String(),
		Action:     "shipment_booked",
		NewValue:   booked.Status().String(),
	}
	if err = h.auditSink.Append(ctx, record); err != nil {
		return BookShipmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return BookShipmentResult{}, err
	}

	return BookShipmentResult{
		ShipmentID: booked.ID(),
		AWB:        booked.AWB().String(),
		Status:     booked.Status(),
	}, nil
}
