package manifest

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrSortDecisionIsNotConstructed is returned when a SortDecision was not
// created through NewSortDecision or RestoreSortDecision.
var ErrSortDecisionIsNotConstructed = errors.New("SortDecision must be created via NewSortDecision or RestoreSortDecision")

// SortDecision records a per-AWB routing choice made inside a hub. It is
// advisory metadata consumed by the next outbound scan as a destination
// default; it never changes shipment status and is not authoritative state.
type SortDecision struct {
	id             kernel.UUID
	awb            kernel.AWB
	hubLocation    string
	destinationHub string
	decidedAt      time.Time

	guard guard.ConstructorGuard
}

// NewSortDecision creates a routing decision for one AWB at one hub.
func NewSortDecision(
	id kernel.UUID,
	awb kernel.AWB,
	hubLocation string,
	destinationHub string,
	decidedAt time.Time,
) (*SortDecision, error) {
	decision := &SortDecision{
		decidedAt: decidedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		decision.setID(id),
		decision.setAWB(awb),
		decision.setHubLocation(hubLocation),
		decision.setDestinationHub(destinationHub),
	); err != nil {
		return nil, err
	}

	if decidedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("decidedAt")
	}

	return decision, nil
}

// RestoreSortDecision reconstructs a routing decision from persistence.
func RestoreSortDecision(
	id kernel.UUID,
	awb kernel.AWB,
	hubLocation string,
	destinationHub string,
	decidedAt time.Time,
) (*SortDecision, error) {
	return NewSortDecision(id, awb, hubLocation, destinationHub, decidedAt)
}

// Validate ensures the SortDecision was properly constructed.
func (d *SortDecision) Validate() error {
	if d == nil {
		return ErrSortDecisionIsNotConstructed
	}
	return d.guard.Validate(ErrSortDecisionIsNotConstructed)
}

// ID returns the decision's unique identifier.
func (d *SortDecision) ID() kernel.UUID {
	return d.id
}

// AWB returns the tracking number the decision applies to.
func (d *SortDecision) AWB() kernel.AWB {
	return d.awb
}

// HubLocation returns the hub where the decision was made.
func (d *SortDecision) HubLocation() string {
	return d.hubLocation
}

// DestinationHub returns the chosen outbound destination.
func (d *SortDecision) DestinationHub() string {
	return d.destinationHub
}

// DecidedAt returns when the decision was made.
func (d *SortDecision) DecidedAt() time.Time {
	return d.decidedAt
}

func (d *SortDecision) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *SortDecision) setAWB(awb kernel.AWB) error {
	if err := awb.Validate(); err != nil {
		return err
	}
	d.awb = awb
	return nil
}

func (d *SortDecision) setHubLocation(hubLocation string) error {
	if hubLocation == "" {
		return errs.NewValueIsRequiredError("hubLocation")
	}
	d.hubLocation = hubLocation
	return nil
}

func (d *SortDecision) setDestinationHub(destinationHub string) error {
	if destinationHub == "" {
		return errs.NewValueIsRequiredError("destinationHub")
	}
	d.destinationHub = destinationHub
	return nil
}
