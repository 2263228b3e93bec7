package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrCreateManifestCommandIsNotConstructed is returned when the command was
// not created through NewCreateManifestCommand.
var ErrCreateManifestCommandIsNotConstructed = errors.New(
	"CreateManifestCommand must be created via NewCreateManifestCommand constructor",
)

// CreateManifestCommand groups a batch of AWBs leaving one hub together,
// bound either for another hub or for a rider's delivery run. Grouping is
// provisional: no shipment changes status until the outbound scan.
type CreateManifestCommand struct { //nolint:recvcheck //using for validation
	originHub      string
	destinationHub *string
	riderID        *kernel.UUID
	awbs           []kernel.AWB
	notes          string
	actorID        string

	guard guard.ConstructorGuard
}

// NewCreateManifestCommand creates a command to build a manifest.
// Either a destination hub or a rider must be given; AWBs must be non-empty
// and free of duplicates.
func NewCreateManifestCommand(
	originHub string,
	destinationHub *string,
	riderID *kernel.UUID,
	awbs []kernel.AWB,
	notes string,
	actorID string,
) (CreateManifestCommand, error) {
	command := CreateManifestCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOriginHub(originHub),
		command.setDestinationHub(destinationHub),
		command.setRiderID(riderID),
		command.setAWBs(awbs),
		command.setActorID(actorID),
	); err != nil {
		return CreateManifestCommand{}, err
	}

	if command.destinationHub == nil && command.riderID == nil {
		return CreateManifestCommand{}, errs.NewValueIsRequiredError("destinationHub or riderId")
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateManifestCommand) Validate() error {
	return c.guard.Validate(ErrCreateManifestCommandIsNotConstructed)
}

// OriginHub returns the hub the manifest will leave from.
func (c CreateManifestCommand) OriginHub() string {
	return c.originHub
}

// DestinationHub returns the receiving hub, or nil for rider handovers.
func (c CreateManifestCommand) DestinationHub() *string {
	if c.destinationHub == nil {
		return nil
	}
	hub := *c.destinationHub
	return &hub
}

// RiderID returns the rider the manifest is meant for, or nil.
func (c CreateManifestCommand) RiderID() *kernel.UUID {
	if c.riderID == nil {
		return nil
	}
	rider := *c.riderID
	return &rider
}

// AWBs returns the tracking numbers declared on the manifest.
func (c CreateManifestCommand) AWBs() []kernel.AWB {
	return append([]kernel.AWB(nil), c.awbs...)
}

// Notes returns the free-form operator remarks.
func (c CreateManifestCommand) Notes() string {
	return c.notes
}

// ActorID returns the operator creating the manifest.
func (c CreateManifestCommand) ActorID() string {
	return c.actorID
}

func (c *CreateManifestCommand) setOriginHub(originHub string) error {
	if originHub == "" {
		return errs.NewValueIsRequiredError("originHub")
	}

	c.originHub = originHub
	return nil
}

func (c *CreateManifestCommand) setDestinationHub(destinationHub *string) error {
	if destinationHub == nil {
		return nil
	}
	if *destinationHub == "" {
		return errs.NewValueIsRequiredError("destinationHub")
	}

	hub := *destinationHub
	c.destinationHub = &hub
	return nil
}

func (c *CreateManifestCommand) setRiderID(riderID *kernel.UUID) error {
	if riderID == nil {
		return nil
	}
	if err := riderID.Validate(); err != nil {
		return err
	}

	rider := *riderID
	c.riderID = &rider
	return nil
}

func (c *CreateManifestCommand) setAWBs(awbs []kernel.AWB) error {
	if len(awbs) == 0 {
		return errs.NewValueIsRequiredError("awbNumbers")
	}
	for _, awb := range awbs {
		if err := awb.Validate(); err != nil {
			return err
		}
	}

	c.awbs = append([]kernel.AWB(nil), awbs...)
	return nil
}

func (c *CreateManifestCommand) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}

	c.actorID = actorID
	return nil
}
