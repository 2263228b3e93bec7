package shipment

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

// Shipment is the aggregate root for a parcel moving through the logistics
// pipeline. It tracks the parcel's lifecycle status, its current custody
// (hub or rider) and the SLA deadlines computed at booking time.
//
// Invariants:
//   - status only ever changes through TransitionTo, which enforces the
//     lifecycle graph in Status
//   - lastStatusChangeAt is updated on every accepted transition and is the
//     sole input to SLA deadline comparisons
//   - the AWB is immutable once issued
//   - terminal shipments (delivered, rto_delivered, cancelled) are retained,
//     never deleted
type Shipment struct {
	// id is the internal unique identifier of the shipment record
	id kernel.UUID

	// awb is the public tracking number, immutable once issued
	awb kernel.AWB

	// merchantID references the merchant the shipment was booked for
	merchantID kernel.UUID

	// currentHub is the code of the hub holding the parcel (nil when not in a hub)
	currentHub *string

	// riderID is the rider currently holding the parcel (nil when not with a rider)
	riderID *kernel.UUID

	// codAmount is the cash-on-delivery amount in minor currency units
	codAmount int64

	// pickupDeadline and deliveryDeadline are computed once at booking
	// from the delivery-type SLA hours
	pickupDeadline   time.Time
	deliveryDeadline time.Time

	// status is the current lifecycle state
	status Status

	// lastStatusChangeAt is the timestamp of the last accepted transition
	lastStatusChangeAt time.Time

	// version is the optimistic-lock token of the persisted record
	version int

	guard guard.ConstructorGuard
}

// NewShipment creates a freshly booked shipment in pending status.
//
// Parameters:
//   - id: internal identifier (must be a valid UUID)
//   - awb: tracking number (must be a valid AWB)
//   - merchantID: owning merchant (must be a valid UUID)
//   - codAmount: cash-on-delivery amount, zero or positive
//   - pickupDeadline, deliveryDeadline: SLA deadlines computed by the booking
//     collaborator; delivery must not precede pickup
//   - bookedAt: booking timestamp, becomes the initial lastStatusChangeAt
func NewShipment(
	id kernel.UUID,
	awb kernel.AWB,
	merchantID kernel.UUID,
	codAmount int64,
	pickupDeadline time.Time,
	deliveryDeadline time.Time,
	bookedAt time.Time,
) (*Shipment, error) {
	shipment := &Shipment{
		status:             Pending,
		lastStatusChangeAt: bookedAt,
		version:            1,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setAWB(awb),
		shipment.setMerchantID(merchantID),
		shipment.setCODAmount(codAmount),
		shipment.setDeadlines(pickupDeadline, deliveryDeadline),
	); err != nil {
		return nil, err
	}

	if bookedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("bookedAt")
	}

	return shipment, nil
}

// RestoreShipment reconstructs a shipment from persistence, preserving its
// exact lifecycle state. The restored aggregate behaves identically to one
// that reached this state through domain operations.
func RestoreShipment(
	id kernel.UUID,
	awb kernel.AWB,
	merchantID kernel.UUID,
	currentHub *string,
	riderID *kernel.UUID,
	codAmount int64,
	pickupDeadline time.Time,
	deliveryDeadline time.Time,
	status Status,
	lastStatusChangeAt time.Time,
	version int,
) (*Shipment, error) {
	shipment := &Shipment{
		currentHub:         currentHub,
		lastStatusChangeAt: lastStatusChangeAt,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setAWB(awb),
		shipment.setMerchantID(merchantID),
		shipment.setCODAmount(codAmount),
		shipment.setDeadlines(pickupDeadline, deliveryDeadline),
		shipment.setStatus(status),
		shipment.setVersion(version),
	); err != nil {
		return nil, err
	}

	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
		rider := *riderID
		shipment.riderID = &rider
	}

	if lastStatusChangeAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("lastStatusChangeAt")
	}

	return shipment, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's internal identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// AWB returns the shipment's tracking number.
func (s *Shipment) AWB() kernel.AWB {
	return s.awb
}

// MerchantID returns the owning merchant's identifier.
func (s *Shipment) MerchantID() kernel.UUID {
	return s.merchantID
}

// CurrentHub returns the code of the hub holding the parcel, or nil.
func (s *Shipment) CurrentHub() *string {
	if s.currentHub == nil {
		return nil
	}
	hub := *s.currentHub
	return &hub
}

// RiderID returns the rider currently holding the parcel, or nil.
func (s *Shipment) RiderID() *kernel.UUID {
	if s.riderID == nil {
		return nil
	}
	rider := *s.riderID
	return &rider
}

// CODAmount returns the cash-on-delivery amount in minor currency units.
func (s *Shipment) CODAmount() int64 {
	return s.codAmount
}

// PickupDeadline returns the pickup SLA deadline computed at booking.
func (s *Shipment) PickupDeadline() time.Time {
	return s.pickupDeadline
}

// DeliveryDeadline returns the delivery SLA deadline computed at booking.
func (s *Shipment) DeliveryDeadline() time.Time {
	return s.deliveryDeadline
}

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// LastStatusChangeAt returns the timestamp of the last accepted transition.
func (s *Shipment) LastStatusChangeAt() time.Time {
	return s.lastStatusChangeAt
}

// Version returns the optimistic-lock token of the persisted record.
func (s *Shipment) Version() int {
	return s.version
}

// TransitionTo applies a lifecycle transition to the shipment.
//
// On success it updates status and lastStatusChangeAt atomically and returns
// the previous status so callers can audit old/new values and perform
// idempotency checks.
//
// A request for the current status is a strict no-op for re-scannable
// statuses (in_hub, out_for_delivery): the previous status is returned with
// changed=false and lastStatusChangeAt is NOT refreshed, keeping it
// meaningful for SLA deadline comparisons. For every other status a repeated
// scan is an IllegalTransitionError.
//
// Illegal edges fail with IllegalTransitionError identifying the current and
// requested statuses; the shipment is never coerced to a "closest valid"
// state.
func (s *Shipment) TransitionTo(target Status, at time.Time) (previous Status, changed bool, err error) {
	if at.IsZero() {
		return Unknown, false, errs.NewValueIsRequiredError("transition timestamp")
	}

	if target == s.status {
		if s.status.IsRescannable() {
			return s.status, false, nil
		}
		return Unknown, false, errs.NewIllegalTransitionError(s.status.String(), target.String())
	}

	newStatus, err := s.status.TransitionTo(target)
	if err != nil {
		return Unknown, false, err
	}

	previous = s.status
	s.status = newStatus
	s.lastStatusChangeAt = at
	return previous, true, nil
}

// MoveToHub records that the parcel is physically inside the given hub.
// Clears any rider custody; custody is exclusive.
func (s *Shipment) MoveToHub(hubCode string) error {
	if hubCode == "" {
		return errs.NewValueIsRequiredError("hubCode")
	}
	s.currentHub = &hubCode
	s.riderID = nil
	return nil
}

// AssignRider records that the parcel has been handed to a rider.
// Clears the hub reference; custody is exclusive.
func (s *Shipment) AssignRider(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	s.riderID = &riderID
	s.currentHub = nil
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setAWB(awb kernel.AWB) error {
	if err := awb.Validate(); err != nil {
		return err
	}
	s.awb = awb
	return nil
}

func (s *Shipment) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return err
	}
	s.merchantID = merchantID
	return nil
}

func (s *Shipment) setCODAmount(codAmount int64) error {
	if codAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("codAmount",
			fmt.Errorf("%d is negative", codAmount))
	}
	s.codAmount = codAmount
	return nil
}

func (s *Shipment) setDeadlines(pickupDeadline, deliveryDeadline time.Time) error {
	if pickupDeadline.IsZero() {
		return errs.NewValueIsRequiredError("pickupDeadline")
	}
	if deliveryDeadline.IsZero() {
		return errs.NewValueIsRequiredError("deliveryDeadline")
	}
	if deliveryDeadline.Before(pickupDeadline) {
		return errs.NewValueIsInvalidErrorWithCause("deliveryDeadline",
			fmt.Errorf("delivery deadline %s precedes pickup deadline %s", deliveryDeadline, pickupDeadline))
	}
	s.pickupDeadline = pickupDeadline
	s.deliveryDeadline = deliveryDeadline
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *Shipment) setVersion(version int) error {
	if version <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not greater than 0", version))
	}
	s.version = version
	return nil
}
