package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

// ErrDetectViolationsCommandIsNotConstructed is returned when the command was
// not created through NewDetectViolationsCommand.
var ErrDetectViolationsCommandIsNotConstructed = errors.New(
	"DetectViolationsCommand must be created via NewDetectViolationsCommand constructor",
)

// DetectViolationsCommand triggers one SLA sweep over all violation types.
// Carries no parameters; the sweep derives its cutoffs from the configured
// thresholds and the wall clock.
type DetectViolationsCommand struct {
	guard guard.ConstructorGuard
}

// NewDetectViolationsCommand creates a command to run an SLA sweep.
func NewDetectViolationsCommand() (DetectViolationsCommand, error) {
	return DetectViolationsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DetectViolationsCommand) Validate() error {
	return c.guard.Validate(ErrDetectViolationsCommandIsNotConstructed)
}
