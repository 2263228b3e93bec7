package shipment

import (
	"parceltrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment in the logistics
// pipeline. It implements a state machine with a fixed transition graph;
// every status change in the system goes through TransitionTo, which is the
// single authority for "is this transition legal right now".
//
// State transitions:
//
//	pending ──> pickup_assigned ──> picked_up ──> in_hub <──> in_transit
//	   │               │                            │
//	   └── cancelled ──┘                            v
//	                                        out_for_delivery ──> delivered
//	                                            │      ^
//	                                            v      │
//	                                      failed_delivery ──> rto_initiated
//	                                                              │
//	                                                              v
//	                                        rto_delivered <── rto_in_transit
//
// delivered, rto_delivered and cancelled are terminal. in_hub is re-entrant:
// a shipment can cycle through in_hub/in_transit once per hub hop.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a booked shipment awaiting pickup assignment.
	Pending

	// PickupAssigned indicates a rider has been assigned to collect the parcel.
	PickupAssigned

	// PickedUp indicates the parcel is in rider custody on its way to the origin hub.
	PickedUp

	// InHub indicates the parcel is inside a hub. Re-entrant: a shipment visits
	// one hub per leg of its journey.
	InHub

	// InTransit indicates the parcel is moving between hubs under a manifest.
	InTransit

	// OutForDelivery indicates the parcel is with a last-mile rider.
	OutForDelivery

	// Delivered is the terminal happy-path status.
	Delivered

	// FailedDelivery indicates a delivery attempt failed. Retryable: the parcel
	// may go out for delivery again, or enter the return-to-origin branch.
	FailedDelivery

	// RTOInitiated indicates the return-to-origin branch has been triggered.
	RTOInitiated

	// RTOInTransit indicates the parcel is travelling back to its origin.
	RTOInTransit

	// RTODelivered is the terminal status of the return branch.
	RTODelivered

	// Cancelled is terminal. Cancellation is only permitted before physical pickup.
	Cancelled
)

// getStatusStrings returns the wire/storage names of all statuses.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		PickupAssigned: "pickup_assigned",
		PickedUp:       "picked_up",
		InHub:          "in_hub",
		InTransit:      "in_transit",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		FailedDelivery: "failed_delivery",
		RTOInitiated:   "rto_initiated",
		RTOInTransit:   "rto_in_transit",
		RTODelivered:   "rto_delivered",
		Cancelled:      "cancelled",
	}
}

// getSuccessors returns the allowed-successor sets of the lifecycle graph.
// A status missing from a set is an illegal target, without exception.
func getSuccessors() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {PickupAssigned, Cancelled},
		PickupAssigned: {PickedUp, Cancelled},
		PickedUp:       {InHub},
		InHub:          {InTransit, OutForDelivery},
		InTransit:      {InHub},
		OutForDelivery: {Delivered, FailedDelivery},
		FailedDelivery: {OutForDelivery, RTOInitiated},
		RTOInitiated:   {RTOInTransit},
		RTOInTransit:   {RTODelivered},
		Delivered:      {},
		RTODelivered:   {},
		Cancelled:      {},
	}
}

// StatusFromString parses a status from its storage name.
// Returns an error for unknown names, including "unknown" itself.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("status " + s)
}

// String returns the storage name of the status.
// Implements fmt.Stringer; safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the Status is one of the defined lifecycle statuses.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getSuccessors()[s]; !ok {
		return errs.NewValueIsInvalidError("status " + s.String())
	}
	return nil
}

// IsTerminal reports whether the status has no legal successors.
// Terminal shipments are retained for audit and never transition again.
func (s Status) IsTerminal() bool {
	successors, ok := getSuccessors()[s]
	return ok && len(successors) == 0
}

// IsRescannable reports whether a repeated scan to the same status is treated
// as a no-op instead of an illegal transition. Only hub and rider custody
// scans are re-scannable; a duplicate terminal or booking event is an error.
func (s Status) IsRescannable() bool {
	return s == InHub || s == OutForDelivery
}

// IsConsolidatable reports whether a shipment in this status may be declared
// on a new manifest. Parcels are manifested from inside a hub or right after
// pickup, never mid-transit or past delivery.
func (s Status) IsConsolidatable() bool {
	return s == InHub || s == PickedUp
}

// CanTransitionTo reports whether target is in the allowed-successor set of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getSuccessors()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge from s to target and returns the new status.
//
// Returns:
//   - (target, nil) when the edge exists in the lifecycle graph
//   - (Unknown, IllegalTransitionError) otherwise, identifying both statuses
//
// A request for the current status is also illegal here; idempotent re-scan
// handling is the aggregate's concern (see Shipment.TransitionTo), not the
// graph's.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewIllegalTransitionError(s.String(), target.String())
	}
	return target, nil
}
