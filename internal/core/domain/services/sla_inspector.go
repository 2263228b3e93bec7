package services

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/pkg/errs"
)

// ViolationType identifies which pipeline stage a shipment overstayed.
type ViolationType string

const (
	// ViolationPickup fires when a shipment awaits pickup past the pickup SLA.
	ViolationPickup ViolationType = "pickup"

	// ViolationDelivery fires when a shipment is out for delivery past the delivery SLA.
	ViolationDelivery ViolationType = "delivery"

	// ViolationInTransit fires when a shipment goes too long without a hub scan.
	ViolationInTransit ViolationType = "intransit"
)

// AllViolationTypes returns the stages the detector sweeps, in a fixed order.
func AllViolationTypes() []ViolationType {
	return []ViolationType{ViolationPickup, ViolationDelivery, ViolationInTransit}
}

// Validate checks that the ViolationType is one of the defined stages.
func (v ViolationType) Validate() error {
	switch v {
	case ViolationPickup, ViolationDelivery, ViolationInTransit:
		return nil
	}
	return errs.NewValueIsInvalidError("violation type " + string(v))
}

// Violation is an SLA breach observed for one shipment at one pipeline stage.
// It is observational: detection never mutates shipment state. Violations
// exist only inside the queue; the worker's audit record is their durable trace.
type Violation struct {
	ShipmentID kernel.UUID
	AWB        kernel.AWB
	Type       ViolationType

	// AllowedSLA is the maximum elapsed time the breached stage permits.
	AllowedSLA time.Duration

	// Context captured at detection time.
	Status     shipment.Status
	LastUpdate time.Time
	RiderID    *kernel.UUID
}

// SLAConfig carries the stage SLA thresholds. It is parsed and validated once
// at startup and injected into the inspector; there is no per-call fallback.
type SLAConfig struct {
	// PickupSLA bounds how long a shipment may wait for pickup.
	PickupSLA time.Duration

	// DeliverySLA bounds how long a rider may hold a shipment out for delivery.
	DeliverySLA time.Duration

	// InTransitSLA bounds the gap between hub scans of a moving shipment.
	InTransitSLA time.Duration
}

// Validate checks that every threshold is positive.
func (c SLAConfig) Validate() error {
	if c.PickupSLA <= 0 {
		return errs.NewValueIsInvalidError("pickup SLA")
	}
	if c.DeliverySLA <= 0 {
		return errs.NewValueIsInvalidError("delivery SLA")
	}
	if c.InTransitSLA <= 0 {
		return errs.NewValueIsInvalidError("in-transit SLA")
	}
	return nil
}

// SLAFor returns the threshold for the given stage.
func (c SLAConfig) SLAFor(violationType ViolationType) time.Duration {
	switch violationType {
	case ViolationPickup:
		return c.PickupSLA
	case ViolationDelivery:
		return c.DeliverySLA
	case ViolationInTransit:
		return c.InTransitSLA
	}
	return 0
}

// SLAInspector is a domain service that decides which shipments have breached
// their stage SLA. It is deterministic: given a fixed now and a fixed set of
// shipment snapshots, two inspections produce identical violation sets.
//
// The three stages partition the status space:
//   - pickup:    pending, pickup_assigned
//   - delivery:  out_for_delivery
//   - intransit: in_transit
//
// The partitioning makes delivery and in-transit violations mutually
// exclusive for a single shipment within one sweep; pickup overlaps neither.
type SLAInspector struct {
	config SLAConfig
}

// NewSLAInspector creates an inspector for the given validated thresholds.
func NewSLAInspector(config SLAConfig) (SLAInspector, error) {
	if err := config.Validate(); err != nil {
		return SLAInspector{}, err
	}
	return SLAInspector{config: config}, nil
}

// Config returns the thresholds the inspector was built with.
func (i SLAInspector) Config() SLAConfig {
	return i.config
}

// StatusesFor returns the statuses eligible for the given stage.
func (i SLAInspector) StatusesFor(violationType ViolationType) []shipment.Status {
	switch violationType {
	case ViolationPickup:
		return []shipment.Status{shipment.Pending, shipment.PickupAssigned}
	case ViolationDelivery:
		return []shipment.Status{shipment.OutForDelivery}
	case ViolationInTransit:
		return []shipment.Status{shipment.InTransit}
	}
	return nil
}

// CutoffFor returns the lastStatusChangeAt cutoff for the given stage: any
// eligible shipment whose last change predates the cutoff is in breach.
func (i SLAInspector) CutoffFor(violationType ViolationType, now time.Time) time.Time {
	return now.Add(-i.config.SLAFor(violationType))
}

// Inspect evaluates candidate shipments for one stage and returns at most one
// violation per (AWB, violation type). Candidates whose status is outside the
// stage's range or whose elapsed time is within the SLA are skipped, so
// callers may pass over-broad candidate sets safely.
func (i SLAInspector) Inspect(
	violationType ViolationType,
	candidates []*shipment.Shipment,
	now time.Time,
) ([]Violation, error) {
	if err := violationType.Validate(); err != nil {
		return nil, err
	}

	eligible := make(map[shipment.Status]bool)
	for _, status := range i.StatusesFor(violationType) {
		eligible[status] = true
	}
	allowed := i.config.SLAFor(violationType)

	seen := make(map[string]bool, len(candidates))
	violations := make([]Violation, 0, len(candidates))
	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}
		if !eligible[candidate.Status()] {
			continue
		}
		if now.Sub(candidate.LastStatusChangeAt()) <= allowed {
			continue
		}
		key := candidate.AWB().String()
		if seen[key] {
			continue
		}
		seen[key] = true

		violations = append(violations, Violation{
			ShipmentID: candidate.ID(),
			AWB:        candidate.AWB(),
			Type:       violationType,
			AllowedSLA: allowed,
			Status:     candidate.Status(),
			LastUpdate: candidate.LastStatusChangeAt(),
			RiderID:    candidate.RiderID(),
		})
	}

	return violations, nil
}
