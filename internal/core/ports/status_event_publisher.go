package ports

import (
	"context"
	"time"
)

// StatusChangedEvent describes one accepted shipment transition for outbound
// consumers (tracking pages, notification services).
type StatusChangedEvent struct {
	AWB            string    `json:"awb"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	ActorID        string    `json:"actorId"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// StatusEventPublisher publishes shipment status changes to an event stream.
// Publishing is best-effort from the pipeline's point of view: a failed
// publish is logged by the caller but never rolls back a transition.
type StatusEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error
}
