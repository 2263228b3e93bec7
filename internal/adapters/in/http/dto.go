package http

import (
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
)

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// BookShipmentRequest registers a new shipment.
type BookShipmentRequest struct {
	AWB              string    `json:"awb"`
	MerchantID       string    `json:"merchantId"`
	CODAmount        int64     `json:"codAmount"`
	PickupDeadline   time.Time `json:"pickupDeadline"`
	DeliveryDeadline time.Time `json:"deliveryDeadline"`
}

// BookShipmentResponse confirms the booking.
type BookShipmentResponse struct {
	ShipmentID string `json:"shipmentId"`
	AWB        string `json:"awb"`
	Status     string `json:"status"`
}

// TransitionShipmentRequest moves a shipment to a target lifecycle status.
type TransitionShipmentRequest struct {
	TargetStatus string `json:"targetStatus"`
	ActorID      string `json:"actorId"`
}

// TransitionShipmentResponse reports the accepted transition.
type TransitionShipmentResponse struct {
	ShipmentID     string `json:"shipmentId"`
	AWB            string `json:"awb"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
	Changed        bool   `json:"changed"`
}

// CreateManifestRequest declares a new manifest's contents and routing.
type CreateManifestRequest struct {
	OriginHub      string   `json:"originHub"`
	DestinationHub *string  `json:"destinationHub,omitempty"`
	RiderID        *string  `json:"riderId,omitempty"`
	AWBNumbers     []string `json:"awbNumbers"`
	Notes          string   `json:"notes,omitempty"`
	ActorID        string   `json:"actorId"`
}

// CreateManifestResponse confirms manifest creation.
type CreateManifestResponse struct {
	ManifestID     string `json:"manifestId"`
	ManifestNumber string `json:"manifestNumber"`
	Status         string `json:"status"`
}

// OutboundScanRequest records parcels leaving a hub, optionally dispatching
// an existing manifest.
type OutboundScanRequest struct {
	ManifestNumber string   `json:"manifestNumber,omitempty"`
	AWBNumbers     []string `json:"awbNumbers,omitempty"`
	OriginHub      string   `json:"originHub"`
	DestinationHub *string  `json:"destinationHub,omitempty"`
	RiderID        *string  `json:"riderId,omitempty"`
	ActorID        string   `json:"actorId"`
}

// ReceiveManifestRequest reconciles a manifest against the scanned parcels.
type ReceiveManifestRequest struct {
	ReceivedAWBNumbers []string `json:"receivedAwbNumbers"`
	HubLocation        string   `json:"hubLocation"`
	ActorID            string   `json:"actorId"`
}

// SortShipmentsRequest records advisory routing decisions for parcels in a hub.
type SortShipmentsRequest struct {
	AWBNumbers     []string `json:"awbNumbers"`
	HubLocation    string   `json:"hubLocation"`
	DestinationHub string   `json:"destinationHub"`
	ActorID        string   `json:"actorId"`
}

// ScanItemResponse is one parcel's outcome within a batch scan.
type ScanItemResponse struct {
	AWB            string `json:"awb"`
	Succeeded      bool   `json:"succeeded"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	NewStatus      string `json:"newStatus,omitempty"`
	FailureReason  string `json:"failureReason,omitempty"`
}

// OutboundScanResponse is the per-item outcome of an outbound scan batch.
type OutboundScanResponse struct {
	ManifestNumber string             `json:"manifestNumber,omitempty"`
	Items          []ScanItemResponse `json:"items"`
}

// ReceiveManifestResponse is the reconciliation outcome plus per-item results.
type ReceiveManifestResponse struct {
	ManifestNumber string             `json:"manifestNumber"`
	ManifestStatus string             `json:"manifestStatus"`
	Items          []ScanItemResponse `json:"items"`
	ShortShipped   []string           `json:"shortShipped"`
	OverReceived   []string           `json:"overReceived"`
}

// SortShipmentsResponse is the per-item outcome of a sort scan batch.
type SortShipmentsResponse struct {
	Items []ScanItemResponse `json:"items"`
}

// OverdueShipmentResponse is one overdue shipment row.
type OverdueShipmentResponse struct {
	ShipmentID         string    `json:"shipmentId"`
	AWB                string    `json:"awb"`
	Status             string    `json:"status"`
	CurrentHub         *string   `json:"currentHub,omitempty"`
	RiderID            *string   `json:"riderId,omitempty"`
	LastStatusChangeAt time.Time `json:"lastStatusChangeAt"`
}

// ManifestResponse is the full manifest read model.
type ManifestResponse struct {
	ManifestID     string     `json:"manifestId"`
	Number         string     `json:"number"`
	OriginHub      string     `json:"originHub"`
	DestinationHub *string    `json:"destinationHub,omitempty"`
	RiderID        *string    `json:"riderId,omitempty"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	ReceivedAt     *time.Time `json:"receivedAt,omitempty"`
	ExpectedAWBs   []string   `json:"expectedAwbs"`
	ReceivedAWBs   []string   `json:"receivedAwbs"`
}

// scanItemsToResponse maps handler-level item results to the wire format.
func scanItemsToResponse(items []commands.ScanItemResult) []ScanItemResponse {
	response := make([]ScanItemResponse, len(items))
	for i, item := range items {
		response[i] = ScanItemResponse{
			AWB:           item.AWB,
			Succeeded:     item.Succeeded,
			FailureReason: item.FailureReason,
		}
		if item.Succeeded {
			response[i].PreviousStatus = item.PreviousStatus
			response[i].NewStatus = item.NewStatus
		}
	}
	return response
}

// manifestToResponse maps the manifest read model to the wire format.
func manifestToResponse(m queries.GetManifestQueryResponse) ManifestResponse {
	response := ManifestResponse{
		ManifestID:     m.ManifestID.String(),
		Number:         m.Number,
		OriginHub:      m.OriginHub,
		DestinationHub: m.DestinationHub,
		Status:         m.Status,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
		ReceivedAt:     m.ReceivedAt,
		ExpectedAWBs:   m.ExpectedAWBs,
		ReceivedAWBs:   m.ReceivedAWBs,
	}
	if m.RiderID != nil {
		rider := m.RiderID.String()
		response.RiderID = &rider
	}
	return response
}
