package queries

import (
	"context"
	"database/sql"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOverdueShipmentsQueryHandler reads overdue shipments straight from the
// database using the same status partition and cutoff the SLA detector uses.
//
// Example:
//
//	handler := NewGetOverdueShipmentsQueryHandler(db, inspector)
//	query, _ := NewGetOverdueShipmentsQuery(services.ViolationDelivery)
//
//	overdue, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d shipments past their delivery SLA\n", len(overdue))
type GetOverdueShipmentsQueryHandler struct {
	db        *gorm.DB
	inspector services.SLAInspector
}

// NewGetOverdueShipmentsQueryHandler creates a handler for overdue queries.
func NewGetOverdueShipmentsQueryHandler(db *gorm.DB, inspector services.SLAInspector) GetOverdueShipmentsQueryHandler {
	return GetOverdueShipmentsQueryHandler{db: db, inspector: inspector}
}

// Handle returns shipments in the queried stage whose last status change
// predates the stage cutoff, oldest first.
func (h GetOverdueShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueShipmentsQuery,
) ([]GetOverdueShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := h.inspector.StatusesFor(query.ViolationType())
	statusValues := make([]int, 0, len(statuses))
	for _, status := range statuses {
		statusValues = append(statusValues, int(status))
	}
	cutoff := h.inspector.CutoffFor(query.ViolationType(), time.Now().UTC())

	overdue := make([]GetOverdueShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			awb,
			status,
			current_hub,
			rider_id,
			last_status_change_at
		FROM shipments
		WHERE status IN ? AND last_status_change_at < ?
		ORDER BY last_status_change_at
	`, statusValues, cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOverdueShipmentsQueryResponse
		var id uuid.UUID
		var status int
		var currentHub sql.NullString
		var riderID uuid.NullUUID

		err = rows.Scan(
			&id,
			&resp.AWB,
			&status,
			&currentHub,
			&riderID,
			&resp.LastStatusChangeAt,
		)
		if err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = shipmentID
		resp.Status = shipment.Status(status).String()

		if currentHub.Valid {
			hub := currentHub.String
			resp.CurrentHub = &hub
		}
		if riderID.Valid {
			rider, riderErr := kernel.UUIDFromBytes(riderID.UUID[:])
			if riderErr != nil {
				return nil, riderErr
			}
			resp.RiderID = &rider
		}

		overdue = append(overdue, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return overdue, nil
}
