package queries

import (
	"context"
	"database/sql"
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/manifest"
	"parceltrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetManifestQueryHandler reads one manifest and its AWB rows.
type GetManifestQueryHandler struct {
	db *gorm.DB
}

// NewGetManifestQueryHandler creates a handler for manifest lookups.
func NewGetManifestQueryHandler(db *gorm.DB) GetManifestQueryHandler {
	return GetManifestQueryHandler{db: db}
}

// Handle returns the manifest read model or ObjectNotFoundError.
func (h GetManifestQueryHandler) Handle(
	ctx context.Context,
	query GetManifestQuery,
) (GetManifestQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetManifestQueryResponse{}, err
	}

	var resp GetManifestQueryResponse
	var id, riderID uuid.UUID
	var riderNull uuid.NullUUID
	var destinationHub sql.NullString
	var status int
	var receivedAt sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			origin_hub,
			destination_hub,
			rider_id,
			status,
			notes,
			created_at,
			received_at
		FROM manifests
		WHERE id = ?
	`, query.ManifestID().Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.Number,
		&resp.OriginHub,
		&destinationHub,
		&riderNull,
		&status,
		&resp.Notes,
		&resp.CreatedAt,
		&receivedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetManifestQueryResponse{}, errs.NewObjectNotFoundError("manifest", query.ManifestID().String())
	}
	if err != nil {
		return GetManifestQueryResponse{}, err
	}

	manifestID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetManifestQueryResponse{}, err
	}
	resp.ManifestID = manifestID
	resp.Status = manifest.Status(status).String()

	if destinationHub.Valid {
		hub := destinationHub.String
		resp.DestinationHub = &hub
	}
	if riderNull.Valid {
		riderID = riderNull.UUID
		rider, riderErr := kernel.UUIDFromBytes(riderID[:])
		if riderErr != nil {
			return GetManifestQueryResponse{}, riderErr
		}
		resp.RiderID = &rider
	}
	if receivedAt.Valid {
		at := receivedAt.Time
		resp.ReceivedAt = &at
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT awb, expected, received
		FROM manifest_awbs
		WHERE manifest_id = ?
		ORDER BY awb
	`, query.ManifestID().Bytes()).Rows()
	if err != nil {
		return GetManifestQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var awb string
		var expected, received bool
		if err = rows.Scan(&awb, &expected, &received); err != nil {
			return GetManifestQueryResponse{}, err
		}
		if expected {
			resp.ExpectedAWBs = append(resp.ExpectedAWBs, awb)
		}
		if received {
			resp.ReceivedAWBs = append(resp.ReceivedAWBs, awb)
		}
	}

	if err = rows.Err(); err != nil {
		return GetManifestQueryResponse{}, err
	}

	return resp, nil
}
