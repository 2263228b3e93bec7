package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrGetManifestQueryIsNotConstructed = errors.New(
	"GetManifestQuery must be created via NewGetManifestQuery constructor",
)

// GetManifestQuery retrieves one manifest with its declared and received
// contents for the ops API.
type GetManifestQuery struct {
	manifestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetManifestQuery creates a query for one manifest.
func NewGetManifestQuery(manifestID kernel.UUID) (GetManifestQuery, error) {
	if err := manifestID.Validate(); err != nil {
		return GetManifestQuery{}, err
	}

	return GetManifestQuery{
		manifestID: manifestID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetManifestQuery) Validate() error {
	return q.guard.Validate(ErrGetManifestQueryIsNotConstructed)
}

// ManifestID returns the queried manifest identifier.
func (q GetManifestQuery) ManifestID() kernel.UUID {
	return q.manifestID
}

// GetManifestQueryResponse is the full manifest read model.
type GetManifestQueryResponse struct {
	ManifestID     kernel.UUID
	Number         string
	OriginHub      string
	DestinationHub *string
	RiderID        *kernel.UUID
	Status         string
	Notes          string
	CreatedAt      time.Time
	ReceivedAt     *time.Time
	ExpectedAWBs   []string
	ReceivedAWBs   []string
}
