package manifestrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/manifest"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormManifestRepository implements ManifestRepository using GORM.
type GormManifestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormManifestRepository creates a new GORM manifest repository.
func NewGormManifestRepository(db *gorm.DB, tracker aggregateTracker) *GormManifestRepository {
	return &GormManifestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new manifest and its AWB rows to the database.
func (r *GormManifestRepository) Add(ctx context.Context, aggregate *manifest.Manifest) error {
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

// Update saves an existing manifest. The AWB rows are replaced wholesale:
// reconciliation rewrites the received flags and may add over-received rows.
func (r *GormManifestRepository) Update(ctx context.Context, aggregate *manifest.Manifest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&ManifestDTO{}).
		Where("id = ?", dto.ID).
		Select("Number", "OriginHub", "DestinationHub", "RiderID", "Status", "Notes", "CreatedAt", "ReceivedAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.db.WithContext(ctx).
		Where("manifest_id = ?", dto.ID).
		Delete(&ManifestAWBDTO{}).Error; err != nil {
		return err
	}
	if len(dto.AWBs) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.AWBs).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a manifest by ID, including its AWB rows.
func (r *GormManifestRepository) Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ManifestDTO
	err := r.db.WithContext(ctx).Preload("AWBs").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("manifest", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves a manifest by its manifest number.
func (r *GormManifestRepository) GetByNumber(ctx context.Context, number string) (*manifest.Manifest, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("manifest number")
	}

	var dto ManifestDTO
	err := r.db.WithContext(ctx).Preload("AWBs").First(&dto, "number = ?", number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("manifest", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// AddSortDecision records an advisory routing decision.
func (r *GormManifestRepository) AddSortDecision(ctx context.Context, decision *manifest.SortDecision) error {
	if err := decision.Validate(); err != nil {
		return err
	}

	dto := sortDecisionFromDomain(decision)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// LatestSortDecision returns the most recent routing decision for the AWB.
func (r *GormManifestRepository) LatestSortDecision(ctx context.Context, awb kernel.AWB) (*manifest.SortDecision, error) {
	if err := awb.Validate(); err != nil {
		return nil, err
	}

	var dto SortDecisionDTO
	err := r.db.WithContext(ctx).
		Where("awb = ?", awb.String()).
		Order("decided_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sort decision", awb.String())
		}
		return nil, err
	}

	return sortDecisionToDomain(dto)
}
