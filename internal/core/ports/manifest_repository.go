package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/manifest"
)

// ManifestRepository defines the persistence contract for manifest aggregates
// and the advisory sort decisions recorded inside hubs.
type ManifestRepository interface {
	// Add persists a new manifest aggregate to storage.
	Add(ctx context.Context, aggregate *manifest.Manifest) error

	// Update persists changes to an existing manifest aggregate.
	Update(ctx context.Context, aggregate *manifest.Manifest) error

	// Get retrieves a manifest aggregate by its internal identifier.
	// Returns ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error)

	// GetByNumber retrieves a manifest aggregate by its manifest number.
	GetByNumber(ctx context.Context, number string) (*manifest.Manifest, error)

	// AddSortDecision records an advisory routing decision for one AWB.
	AddSortDecision(ctx context.Context, decision *manifest.SortDecision) error

	// LatestSortDecision returns the most recent routing decision for the
	// given AWB, or ObjectNotFoundError when none was recorded.
	LatestSortDecision(ctx context.Context, awb kernel.AWB) (*manifest.SortDecision, error)
}
