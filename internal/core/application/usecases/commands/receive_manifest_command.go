package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrReceiveManifestCommandIsNotConstructed is returned when the command was
// not created through NewReceiveManifestCommand.
var ErrReceiveManifestCommandIsNotConstructed = errors.New(
	"ReceiveManifestCommand must be created via NewReceiveManifestCommand constructor",
)

// ReceiveManifestCommand reconciles a manifest at its receiving hub against
// the AWBs physically scanned off the truck. An empty scan list is legal;
// it simply short-ships the entire declared contents.
type ReceiveManifestCommand struct { //nolint:recvcheck //using for validation
	manifestID   kernel.UUID
	receivedAWBs []kernel.AWB
	hubLocation  string
	actorID      string

	guard guard.ConstructorGuard
}

// NewReceiveManifestCommand creates a command to receive a manifest at a hub.
func NewReceiveManifestCommand(
	manifestID kernel.UUID,
	receivedAWBs []kernel.AWB,
	hubLocation string,
	actorID string,
) (ReceiveManifestCommand, error) {
	command := ReceiveManifestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setManifestID(manifestID),
		command.setReceivedAWBs(receivedAWBs),
		command.setHubLocation(hubLocation),
		command.setActorID(actorID),
	); err != nil {
		return ReceiveManifestCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveManifestCommand) Validate() error {
	return c.guard.Validate(ErrReceiveManifestCommandIsNotConstructed)
}

// ManifestID returns the identifier of the manifest being received.
func (c ReceiveManifestCommand) ManifestID() kernel.UUID {
	return c.manifestID
}

// ReceivedAWBs returns the tracking numbers physically scanned at receipt.
func (c ReceiveManifestCommand) ReceivedAWBs() []kernel.AWB {
	return append([]kernel.AWB(nil), c.receivedAWBs...)
}

// HubLocation returns the receiving hub.
func (c ReceiveManifestCommand) HubLocation() string {
	return c.hubLocation
}

// ActorID returns the operator performing the receipt scan.
func (c ReceiveManifestCommand) ActorID() string {
	return c.actorID
}

func (c *ReceiveManifestCommand) setManifestID(manifestID kernel.UUID) error {
	if err := manifestID.Validate(); err != nil {
		return err
	}

	c.manifestID = manifestID
	return nil
}

func (c *ReceiveManifestCommand) setReceivedAWBs(receivedAWBs []kernel.AWB) error {
	for _, awb := range receivedAWBs {
		if err := awb.Validate(); err != nil {
			return err
		}
	}

	c.receivedAWBs = append([]kernel.AWB(nil), receivedAWBs...)
	return nil
}

func (c *ReceiveManifestCommand) setHubLocation(hubLocation string) error {
	if hubLocation == "" {
		return errs.NewValueIsRequiredError("hubLocation")
	}

	c.hubLocation = hubLocation
	return nil
}

func (c *ReceiveManifestCommand) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}

	c.actorID = actorID
	return nil
}
