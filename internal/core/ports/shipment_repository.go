// Package ports defines repository and collaborator interfaces for the parcel
// tracking domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
// Writes must be serialized per shipment row: Update applies an optimistic
// version check and fails with ConcurrentModificationError when another
// operator touched the record first.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	// The shipment must be valid and its AWB must not already exist.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	// The write is rejected with ConcurrentModificationError when the stored
	// version no longer matches the aggregate's version.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByAWB retrieves a shipment aggregate by its tracking number.
	// Returns ObjectNotFoundError for unknown AWBs.
	GetByAWB(ctx context.Context, awb kernel.AWB) (*shipment.Shipment, error)

	// FindByStatusOlderThan retrieves shipments in any of the given statuses
	// whose last status change predates the cutoff. The SLA detector calls
	// this once per violation type with that stage's own cutoff.
	FindByStatusOlderThan(ctx context.Context, statuses []shipment.Status, cutoff time.Time) ([]*shipment.Shipment, error)
}
