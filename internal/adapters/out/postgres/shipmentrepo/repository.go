package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment, guarded by the optimistic version check.
// The row is matched on both id and the version the aggregate was loaded
// with; zero affected rows means another writer got there first.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("shipment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByAWB retrieves a shipment by its tracking number.
func (r *GormShipmentRepository) GetByAWB(ctx context.Context, awb kernel.AWB) (*shipment.Shipment, error) {
	if err := awb.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "awb = ?", awb.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("awb", awb.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByStatusOlderThan retrieves shipments in any of the given statuses
// whose last status change predates the cutoff, oldest first.
func (r *GormShipmentRepository) FindByStatusOlderThan(
	ctx context.Context,
	statuses []shipment.Status,
	cutoff time.Time,
) ([]*shipment.Shipment, error) {
	statusValues := make([]int, 0, len(statuses))
	for _, status := range statuses {
		statusValues = append(statusValues, int(status))
	}

	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Where("status IN ? AND last_status_change_at < ?", statusValues, cutoff).
		Order("last_status_change_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}
