package manifest

import (
	"parceltrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a manifest.
//
// State transitions:
//
//	created ──> dispatched ──> received
//	                 │
//	                 └───────> discrepant
//
// received and discrepant are terminal reconciliation outcomes; a manifest is
// retained indefinitely as an audit trail and never deleted.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created is the initial status; grouping is provisional until dispatch.
	Created

	// Dispatched indicates the manifest left its origin hub on an outbound scan.
	Dispatched

	// Received indicates reconciliation completed with no discrepancies.
	Received

	// Discrepant indicates reconciliation completed with short-shipped or
	// over-received items. The operation still completes; physical package
	// flow cannot roll back.
	Discrepant
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Created:    "created",
		Dispatched: "dispatched",
		Received:   "received",
		Discrepant: "discrepant",
	}
}

// String returns the storage name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the Status is one of the defined manifest statuses.
func (s Status) Validate() error {
	if s == Created || s == Dispatched || s == Received || s == Discrepant {
		return nil
	}
	return errs.NewValueIsInvalidError("manifest status " + s.String())
}

// IsFinal reports whether the manifest has reached a terminal reconciliation
// outcome. Final manifests cannot be received again.
func (s Status) IsFinal() bool {
	return s == Received || s == Discrepant
}

// Dispatch transitions the status to Dispatched.
//
// Valid transitions:
//   - Created -> Dispatched
//
// Everything else fails with an IllegalTransitionError.
func (s Status) Dispatch() (Status, error) {
	if s != Created {
		return Unknown, errs.NewIllegalTransitionError(s.String(), Dispatched.String())
	}
	return Dispatched, nil
}
