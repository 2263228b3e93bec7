package commands

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrBookShipmentCommandIsNotConstructed is returned when the command was not
// created through NewBookShipmentCommand.
var ErrBookShipmentCommandIsNotConstructed = errors.New(
	"BookShipmentCommand must be created via NewBookShipmentCommand constructor",
)

// BookShipmentCommand registers a new parcel under a merchant. The shipment
// enters the lifecycle in pending status with its SLA deadlines fixed.
//
// Example:
//
//	awb, _ := kernel.NewAWB("AWB-1001")
//	cmd, err := NewBookShipmentCommand(awb, merchantID, 25000, pickupBy, deliverBy)
//	if err != nil {
//	    return fmt.Errorf("invalid booking data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type BookShipmentCommand struct { //nolint:recvcheck //using for validation
	awb              kernel.AWB
	merchantID       kernel.UUID
	codAmount        int64
	pickupDeadline   time.Time
	deliveryDeadline time.Time

	guard guard.ConstructorGuard
}

// NewBookShipmentCommand creates a command to book a shipment.
// Validates the AWB and merchant identity, a non-negative COD amount and
// ordered, non-zero deadlines.
func NewBookShipmentCommand(
	awb kernel.AWB,
	merchantID kernel.UUID,
	codAmount int64,
	pickupDeadline time.Time,
	deliveryDeadline time.Time,
) (BookShipmentCommand, error) {
	command := BookShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAWB(awb),
		command.setMerchantID(merchantID),
		command.setCODAmount(codAmount),
		command.setDeadlines(pickupDeadline, deliveryDeadline),
	); err != nil {
		return BookShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c BookShipmentCommand) Validate() error {
	return c.guard.Validate(ErrBookShipmentCommandIsNotConstructed)
}

// AWB returns the air waybill tracking number.
func (c BookShipmentCommand) AWB() kernel.AWB {
	return c.awb
}

// MerchantID returns the owning merchant's identifier.
func (c BookShipmentCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

// CODAmount returns the cash-on-delivery amount in minor currency units.
func (c BookShipmentCommand) CODAmount() int64 {
	return c.codAmount
}

// PickupDeadline returns the SLA deadline for pickup.
func (c BookShipmentCommand) PickupDeadline() time.Time {
	return c.pickupDeadline
}

// DeliveryDeadline returns the SLA deadline for delivery.
func (c BookShipmentCommand) DeliveryDeadline() time.Time {
	return c.deliveryDeadline
}

func (c *BookShipmentCommand) setAWB(awb kernel.AWB) error {
	if err := awb.Validate(); err != nil {
		return err
	}

	c.awb = awb
	return nil
}

func (c *BookShipmentCommand) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return err
	}

	c.merchantID = merchantID
	return nil
}

func (c *BookShipmentCommand) setCODAmount(codAmount int64) error {
	if codAmount < 0 {
		return errs.NewValueIsInvalidError("codAmount")
	}

	c.codAmount = codAmount
	return nil
}

func (c *BookShipmentCommand) setDeadlines(pickupDeadline, deliveryDeadline time.Time) error {
	if pickupDeadline.IsZero() {
		return errs.NewValueIsRequiredError("pickupDeadline")
	}
	if deliveryDeadline.IsZero() {
		return errs.NewValueIsRequiredError("deliveryDeadline")
	}
	if deliveryDeadline.Before(pickupDeadline) {
		return errs.NewValueIsInvalidError("deliveryDeadline")
	}

	c.pickupDeadline = pickupDeadline
	c.deliveryDeadline = deliveryDeadline
	return nil
}
