package rabbitmq

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

// violationJobMessage is the wire format of a violation job. Identities travel
// as strings and the allowed SLA as whole seconds, keeping the payload
// readable in the broker's management UI.
type violationJobMessage struct {
	JobID             string    `json:"jobId"`
	ShipmentID        string    `json:"shipmentId"`
	AWB               string    `json:"awb"`
	Type              string    `json:"type"`
	AllowedSLASeconds int64     `json:"allowedSlaSeconds"`
	Status            string    `json:"status"`
	LastUpdate        time.Time `json:"lastUpdate"`
	RiderID           *string   `json:"riderId,omitempty"`
}

// messageFromJob converts a port-level violation job to its wire format.
func messageFromJob(job ports.ViolationJob) violationJobMessage {
	message := violationJobMessage{
		JobID:             job.ID.String(),
		ShipmentID:        job.Violation.ShipmentID.String(),
		AWB:               job.Violation.AWB.String(),
		Type:              string(job.Violation.Type),
		AllowedSLASeconds: int64(job.Violation.AllowedSLA / time.Second),
		Status:            job.Violation.Status.String(),
		LastUpdate:        job.Violation.LastUpdate.UTC(),
	}
	if job.Violation.RiderID != nil {
		rider := job.Violation.RiderID.String()
		message.RiderID = &rider
	}
	return message
}

// toJob converts a wire message back to a port-level violation job.
func (m violationJobMessage) toJob() (ports.ViolationJob, error) {
	jobID, err := kernel.UUIDFromString(m.JobID)
	if err != nil {
		return ports.ViolationJob{}, err
	}

	shipmentID, err := kernel.UUIDFromString(m.ShipmentID)
	if err != nil {
		return ports.ViolationJob{}, err
	}

	awb, err := kernel.NewAWB(m.AWB)
	if err != nil {
		return ports.ViolationJob{}, err
	}

	violationType := services.ViolationType(m.Type)
	if err = violationType.Validate(); err != nil {
		return ports.ViolationJob{}, err
	}

	status, err := shipment.StatusFromString(m.Status)
	if err != nil {
		return ports.ViolationJob{}, err
	}

	var riderID *kernel.UUID
	if m.RiderID != nil {
		rider, riderErr := kernel.UUIDFromString(*m.RiderID)
		if riderErr != nil {
			return ports.ViolationJob{}, riderErr
		}
		riderID = &rider
	}

	return ports.ViolationJob{
		ID: jobID,
		Violation: services.Violation{
			ShipmentID: shipmentID,
			AWB:        awb,
			Type:       violationType,
			AllowedSLA: time.Duration(m.AllowedSLASeconds) * time.Second,
			Status:     status,
			LastUpdate: m.LastUpdate,
			RiderID:    riderID,
		},
	}, nil
}
