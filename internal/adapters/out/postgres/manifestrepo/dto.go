// Package manifestrepo provides data transfer objects and mapping functions
// for manifest persistence. A manifest row owns child rows in manifest_awbs
// carrying the expected/received flags the reconciliation produces; sort
// decisions live in their own table keyed by AWB.
package manifestrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/manifest"

	"github.com/google/uuid"
)

// ManifestDTO represents the database structure for persisting manifest aggregates.
type ManifestDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number         string     `gorm:"size:64;uniqueIndex;not null"`
	OriginHub      string     `gorm:"size:64;not null"`
	DestinationHub *string    `gorm:"size:64"`
	RiderID        *uuid.UUID `gorm:"type:uuid"`
	Status         int        `gorm:"index"`
	Notes          string
	CreatedAt      time.Time
	ReceivedAt     *time.Time

	AWBs []ManifestAWBDTO `gorm:"foreignKey:ManifestID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for manifest entities.
func (ManifestDTO) TableName() string {
	return "manifests"
}

// ManifestAWBDTO is one AWB's membership row. Expected marks AWBs declared at
// creation; Received marks AWBs scanned at receipt. Over-received parcels get
// a row with Expected false.
type ManifestAWBDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	ManifestID uuid.UUID `gorm:"type:uuid;index;not null"`
	AWB        string    `gorm:"size:32;index;not null"`
	Expected   bool
	Received   bool
}

// TableName specifies the database table name for manifest AWB rows.
func (ManifestAWBDTO) TableName() string {
	return "manifest_awbs"
}

// SortDecisionDTO represents one advisory routing decision.
type SortDecisionDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	AWB            string    `gorm:"size:32;index;not null"`
	HubLocation    string    `gorm:"size:64;not null"`
	DestinationHub string    `gorm:"size:64;not null"`
	DecidedAt      time.Time `gorm:"index"`
}

// TableName specifies the database table name for sort decisions.
func (SortDecisionDTO) TableName() string {
	return "sort_decisions"
}

// fromDomain converts a manifest domain aggregate to its database representation.
func fromDomain(aggregate *manifest.Manifest) ManifestDTO {
	var riderID *uuid.UUID
	if id := aggregate.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	received := make(map[string]bool)
	for _, awb := range aggregate.ReceivedAWBs() {
		received[awb.String()] = true
	}

	awbs := make([]ManifestAWBDTO, 0, len(aggregate.ExpectedAWBs()))
	for _, awb := range aggregate.ExpectedAWBs() {
		awbs = append(awbs, ManifestAWBDTO{
			ManifestID: aggregate.ID().Bytes(),
			AWB:        awb.String(),
			Expected:   true,
			Received:   received[awb.String()],
		})
	}
	for _, awb := range aggregate.ReceivedAWBs() {
		if !aggregate.Contains(awb) {
			awbs = append(awbs, ManifestAWBDTO{
				ManifestID: aggregate.ID().Bytes(),
				AWB:        awb.String(),
				Expected:   false,
				Received:   true,
			})
		}
	}

	return ManifestDTO{
		ID:             aggregate.ID().Bytes(),
		Number:         aggregate.Number(),
		OriginHub:      aggregate.OriginHub(),
		DestinationHub: aggregate.DestinationHub(),
		RiderID:        riderID,
		Status:         int(aggregate.Status()),
		Notes:          aggregate.Notes(),
		CreatedAt:      aggregate.CreatedAt(),
		ReceivedAt:     aggregate.ReceivedAt(),
		AWBs:           awbs,
	}
}

// toDomain converts a database DTO to a manifest domain aggregate using
// RestoreManifest, preserving the exact reconciliation state.
func toDomain(dto ManifestDTO) (*manifest.Manifest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	expected := make([]kernel.AWB, 0, len(dto.AWBs))
	received := make([]kernel.AWB, 0)
	for _, row := range dto.AWBs {
		awb, awbErr := kernel.NewAWB(row.AWB)
		if awbErr != nil {
			return nil, awbErr
		}
		if row.Expected {
			expected = append(expected, awb)
		}
		if row.Received {
			received = append(received, awb)
		}
	}

	return manifest.RestoreManifest(
		id,
		dto.Number,
		dto.OriginHub,
		dto.DestinationHub,
		expected,
		riderID,
		received,
		manifest.Status(dto.Status),
		dto.Notes,
		dto.CreatedAt,
		dto.ReceivedAt,
	)
}

// sortDecisionFromDomain converts a sort decision to its database representation.
func sortDecisionFromDomain(decision *manifest.SortDecision) SortDecisionDTO {
	return SortDecisionDTO{
		ID:             decision.ID().Bytes(),
		AWB:            decision.AWB().String(),
		HubLocation:    decision.HubLocation(),
		DestinationHub: decision.DestinationHub(),
		DecidedAt:      decision.DecidedAt(),
	}
}

// sortDecisionToDomain converts a database DTO to a sort decision.
func sortDecisionToDomain(dto SortDecisionDTO) (*manifest.SortDecision, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	awb, err := kernel.NewAWB(dto.AWB)
	if err != nil {
		return nil, err
	}

	return manifest.RestoreSortDecision(id, awb, dto.HubLocation, dto.DestinationHub, dto.DecidedAt)
}
