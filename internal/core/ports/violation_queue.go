package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
)

// ViolationJob wraps a detected SLA violation for queue transport. The job ID
// doubles as the audit deduplication key, so a redelivered job writes the
// same audit record instead of a duplicate.
type ViolationJob struct {
	ID        kernel.UUID
	Violation services.Violation
}

// ViolationQueue is the durable queue carrying violation events from the
// detector to the escalation workers. Implementations must provide
// at-least-once delivery and retry failed jobs with their own backoff policy;
// the detector itself never retries.
type ViolationQueue interface {
	Enqueue(ctx context.Context, job ViolationJob) error
}
