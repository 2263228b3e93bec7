package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrTransitionShipmentCommandIsNotConstructed is returned when the command
// was not created through NewTransitionShipmentCommand.
var ErrTransitionShipmentCommandIsNotConstructed = errors.New(
	"TransitionShipmentCommand must be created via NewTransitionShipmentCommand constructor",
)

// TransitionShipmentCommand requests one lifecycle step for a shipment,
// identified by its AWB. The target status must be reachable from the
// shipment's current status; the state machine decides, not the caller.
type TransitionShipmentCommand struct { //nolint:recvcheck //using for validation
	awb     kernel.AWB
	target  shipment.Status
	actorID string

	guard guard.ConstructorGuard
}

// NewTransitionShipmentCommand creates a command to move a shipment to the
// target status. The actor is the operator or system component requesting
// the change and ends up in the audit trail.
func NewTransitionShipmentCommand(
	awb kernel.AWB,
	target shipment.Status,
	actorID string,
) (TransitionShipmentCommand, error) {
	command := TransitionShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAWB(awb),
		command.setTarget(target),
		command.setActorID(actorID),
	); err != nil {
		return TransitionShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionShipmentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionShipmentCommandIsNotConstructed)
}

// AWB returns the tracking number of the shipment to transition.
func (c TransitionShipmentCommand) AWB() kernel.AWB {
	return c.awb
}

// Target returns the requested destination status.
func (c TransitionShipmentCommand) Target() shipment.Status {
	return c.target
}

// ActorID returns the identity of the party requesting the transition.
func (c TransitionShipmentCommand) ActorID() string {
	return c.actorID
}

func (c *TransitionShipmentCommand) setAWB(awb kernel.AWB) error {
	if err := awb.Validate(); err != nil {
		return err
	}

	c.awb = awb
	return nil
}

func (c *TransitionShipmentCommand) setTarget(target shipment.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionShipmentCommand) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}

	c.actorID = actorID
	return nil
}
