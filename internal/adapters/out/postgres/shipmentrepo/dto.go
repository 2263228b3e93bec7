// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. Implements the repository pattern for the
// shipment aggregate, converting between domain entities and database rows.
package shipmentrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The version column backs the optimistic locking check in
// Update; status and last_status_change_at are indexed for the SLA sweep.
type ShipmentDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AWB                string     `gorm:"size:32;uniqueIndex;not null"`
	MerchantID         uuid.UUID  `gorm:"type:uuid;index"`
	CurrentHub         *string    `gorm:"size:64"`
	RiderID            *uuid.UUID `gorm:"type:uuid;index"`
	CODAmount          int64
	PickupDeadline     time.Time
	DeliveryDeadline   time.Time
	Status             int       `gorm:"index"`
	LastStatusChangeAt time.Time `gorm:"index"`
	Version            int
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment domain aggregate to its database representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	var riderID *uuid.UUID
	if id := aggregate.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	return ShipmentDTO{
		ID:                 aggregate.ID().Bytes(),
		AWB:                aggregate.AWB().String(),
		MerchantID:         aggregate.MerchantID().Bytes(),
		CurrentHub:         aggregate.CurrentHub(),
		RiderID:            riderID,
		CODAmount:          aggregate.CODAmount(),
		PickupDeadline:     aggregate.PickupDeadline(),
		DeliveryDeadline:   aggregate.DeliveryDeadline(),
		Status:             int(aggregate.Status()),
		LastStatusChangeAt: aggregate.LastStatusChangeAt(),
		Version:            aggregate.Version(),
	}
}

// toDomain converts a database DTO to a shipment domain aggregate using
// RestoreShipment, preserving the exact lifecycle state.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	awb, err := kernel.NewAWB(dto.AWB)
	if err != nil {
		return nil, err
	}

	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}

		riderID = &rID
	}

	return shipment.RestoreShipment(
		id,
		awb,
		merchantID,
		dto.CurrentHub,
		riderID,
		dto.CODAmount,
		dto.PickupDeadline,
		dto.DeliveryDeadline,
		shipment.Status(dto.Status),
		dto.LastStatusChangeAt,
		dto.Version,
	)
}
