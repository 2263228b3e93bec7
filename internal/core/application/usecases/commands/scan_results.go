package commands

import "parceltrack/internal/core/domain/model/shipment"

// ScanItemResult reports the outcome of one AWB within a batch scan.
// Batch operations never fail as a whole because of a single bad parcel:
// each item succeeds or fails on its own and the caller gets the full list.
type ScanItemResult struct {
	AWB            string
	Succeeded      bool
	PreviousStatus string
	NewStatus      string

	// FailureReason carries the item error message when Succeeded is false.
	FailureReason string
}

func newScanItemSuccess(awb string, previous, current shipment.Status) ScanItemResult {
	return ScanItemResult{
		AWB:            awb,
		Succeeded:      true,
		PreviousStatus: previous.String(),
		NewStatus:      current.String(),
	}
}

func newScanItemFailure(awb string, err error) ScanItemResult {
	return ScanItemResult{
		AWB:           awb,
		Succeeded:     false,
		FailureReason: err.Error(),
	}
}
