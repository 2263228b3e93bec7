package commands

import (
	"errors"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/guard"
)

// ErrRecordViolationCommandIsNotConstructed is returned when the command was
// not created through NewRecordViolationCommand.
var ErrRecordViolationCommandIsNotConstructed = errors.New(
	"RecordViolationCommand must be created via NewRecordViolationCommand constructor",
)

// RecordViolationCommand carries one dequeued violation job to the escalation
// worker's only contracted effect: a durable audit record.
type RecordViolationCommand struct {
	job ports.ViolationJob

	guard guard.ConstructorGuard
}

// NewRecordViolationCommand creates a command from a dequeued violation job.
// The job ID and the violation's identity fields must be valid; a malformed
// job is rejected before any write.
func NewRecordViolationCommand(job ports.ViolationJob) (RecordViolationCommand, error) {
	if err := errors.Join(
		job.ID.Validate(),
		job.Violation.ShipmentID.Validate(),
		job.Violation.AWB.Validate(),
		job.Violation.Type.Validate(),
	); err != nil {
		return RecordViolationCommand{}, err
	}

	return RecordViolationCommand{
		job:   job,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordViolationCommand) Validate() error {
	return c.guard.Validate(ErrRecordViolationCommandIsNotConstructed)
}

// Job returns the violation job being recorded.
func (c RecordViolationCommand) Job() ports.ViolationJob {
	return c.job
}
