package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
)

// AuditRecord describes one append-only entry: what happened, when, by whom.
// OldValue/NewValue carry before/after snapshots for state transitions and
// are empty for purely observational records such as SLA breaches.
type AuditRecord struct {
	// ID is supplied by the caller and deduplicates retried writes: an append
	// with an already-stored ID is a no-op, making the sink safe under
	// at-least-once delivery.
	ID kernel.UUID

	ActorID    string
	EntityType string
	EntityID   string
	Action     string
	OldValue   string
	NewValue   string

	// Context carries free-form key/value details about the event.
	Context map[string]string
}

// AuditSink is the external append-only audit log collaborator.
// Implementations must never fail silently: an append either succeeds or
// returns an error the caller can act on.
type AuditSink interface {
	Append(ctx context.Context, record AuditRecord) error
}
