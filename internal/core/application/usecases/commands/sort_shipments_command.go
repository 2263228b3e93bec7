package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrSortShipmentsCommandIsNotConstructed is returned when the command was
// not created through NewSortShipmentsCommand.
var ErrSortShipmentsCommandIsNotConstructed = errors.New(
	"SortShipmentsCommand must be created via NewSortShipmentsCommand constructor",
)

// SortShipmentsCommand records advisory routing decisions made on the hub
// sort floor. Sorting never changes shipment status; the decision is picked
// up as the destination default by the next outbound scan.
type SortShipmentsCommand struct { //nolint:recvcheck //using for validation
	awbs           []kernel.AWB
	hubLocation    string
	destinationHub string
	actorID        string

	guard guard.ConstructorGuard
}

// NewSortShipmentsCommand creates a command to sort a batch of parcels
// toward a destination hub.
func NewSortShipmentsCommand(
	awbs []kernel.AWB,
	hubLocation string,
	destinationHub string,
	actorID string,
) (SortShipmentsCommand, error) {
	command := SortShipmentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAWBs(awbs),
		command.setHubLocation(hubLocation),
		command.setDestinationHub(destinationHub),
		command.setActorID(actorID),
	); err != nil {
		return SortShipmentsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SortShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrSortShipmentsCommandIsNotConstructed)
}

// AWBs returns the tracking numbers being sorted.
func (c SortShipmentsCommand) AWBs() []kernel.AWB {
	return append([]kernel.AWB(nil), c.awbs...)
}

// HubLocation returns the hub where the sort happens.
func (c SortShipmentsCommand) HubLocation() string {
	return c.hubLocation
}

// DestinationHub returns the hub the parcels are routed toward.
func (c SortShipmentsCommand) DestinationHub() string {
	return c.destinationHub
}

// ActorID returns the operator performing the sort.
func (c SortShipmentsCommand) ActorID() string {
	return c.actorID
}

func (c *SortShipmentsCommand) setAWBs(awbs []kernel.AWB) error {
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

func (c *SortShipmentsCommand) setHubLocation(hubLocation string) error {
	if hubLocation == "" {
		return errs.NewValueIsRequiredError("hubLocation")
	}

	c.hubLocation = hubLocation
	return nil
}

func (c *SortShipmentsCommand) setDestinationHub(destinationHub string) error {
	if destinationHub == "" {
		return errs.NewValueIsRequiredError("destinationHub")
	}

	c.destinationHub = destinationHub
	return nil
}

func (c *SortShipmentsCommand) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}

	c.actorID = actorID
	return nil
}
