// Package queries contains read-only operations for the parcel tracking API.
// Implements the Query side of the CQRS architecture: handlers read directly
// from the database and never touch domain aggregates.
package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/guard"
)

var ErrGetOverdueShipmentsQueryIsNotConstructed = errors.New(
	"GetOverdueShipmentsQuery must be created via NewGetOverdueShipmentsQuery constructor",
)

// GetOverdueShipmentsQuery retrieves shipments that have breached the SLA for
// one pipeline stage. This is the ops-facing read model behind the detector:
// same cutoff arithmetic, no queue side effects.
type GetOverdueShipmentsQuery struct {
	violationType services.ViolationType

	guard guard.ConstructorGuard
}

// NewGetOverdueShipmentsQuery creates a query for one violation type.
func NewGetOverdueShipmentsQuery(violationType services.ViolationType) (GetOverdueShipmentsQuery, error) {
	if err := violationType.Validate(); err != nil {
		return GetOverdueShipmentsQuery{}, err
	}

	return GetOverdueShipmentsQuery{
		violationType: violationType,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueShipmentsQueryIsNotConstructed)
}

// ViolationType returns the pipeline stage being queried.
func (q GetOverdueShipmentsQuery) ViolationType() services.ViolationType {
	return q.violationType
}

// GetOverdueShipmentsQueryResponse is one overdue shipment row.
type GetOverdueShipmentsQueryResponse struct {
	ID                 kernel.UUID
	AWB                string
	Status             string
	CurrentHub         *string
	RiderID            *kernel.UUID
	LastStatusChangeAt time.Time
}
