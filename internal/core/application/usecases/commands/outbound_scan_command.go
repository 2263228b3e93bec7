package commands

import (
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrOutboundScanCommandIsNotConstructed is returned when the command was not
// created through NewOutboundScanCommand.
var ErrOutboundScanCommandIsNotConstructed = errors.New(
	"OutboundScanCommand must be created via NewOutboundScanCommand constructor",
)

// OutboundScanCommand records parcels physically leaving a hub. The scan may
// dispatch a pre-created manifest (by its number) or carry an ad-hoc AWB list;
// shipments move to in_transit when bound for a hub or to out_for_delivery
// when handed to a rider.
type OutboundScanCommand struct { //nolint:recvcheck //using for validation
	manifestNumber string
	awbs           []kernel.AWB
	originHub      string
	destinationHub *string
	riderID        *kernel.UUID
	actorID        string

	guard guard.ConstructorGuard
}

// NewOutboundScanCommand creates a command for an outbound hub scan.
// Either a manifest number or an explicit AWB list must be given. A
// destination hub and a rider are mutually exclusive; when neither is set the
// scan falls back to the manifest's own routing or the latest sort decision
// per AWB.
func NewOutboundScanCommand(
	manifestNumber string,
	awbs []kernel.AWB,
	originHub string,
	destinationHub *string,
	riderID *kernel.UUID,
	actorID string,
) (OutboundScanCommand, error) {
	command := OutboundScanCommand{
		manifestNumber: manifestNumber,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOriginHub(originHub),
		command.setAWBs(awbs),
		command.setDestinationHub(destinationHub),
		command.setRiderID(riderID),
		command.setActorID(actorID),
	); err != nil {
		return OutboundScanCommand{}, err
	}

	if command.manifestNumber == "" && len(command.awbs) == 0 {
		return OutboundScanCommand{}, errs.NewValueIsRequiredError("manifestNumber or awbNumbers")
	}
	if command.destinationHub != nil && command.riderID != nil {
		return OutboundScanCommand{}, errs.NewValueIsInvalidErrorWithCause("destinationHub",
			fmt.Errorf("destination hub and rider are mutually exclusive"))
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c OutboundScanCommand) Validate() error {
	return c.guard.Validate(ErrOutboundScanCommandIsNotConstructed)
}

// ManifestNumber returns the manifest being dispatched, or empty for ad-hoc scans.
func (c OutboundScanCommand) ManifestNumber() string {
	return c.manifestNumber
}

// AWBs returns the explicitly scanned tracking numbers.
func (c OutboundScanCommand) AWBs() []kernel.AWB {
	return append([]kernel.AWB(nil), c.awbs...)
}

// OriginHub returns the hub the parcels are leaving.
func (c OutboundScanCommand) OriginHub() string {
	return c.originHub
}

// DestinationHub returns the scan-level destination override, or nil.
func (c OutboundScanCommand) DestinationHub() *string {
	if c.destinationHub == nil {
		return nil
	}
	hub := *c.destinationHub
	return &hub
}

// RiderID returns the rider taking custody, or nil for hub transfers.
func (c OutboundScanCommand) RiderID() *kernel.UUID {
	if c.riderID == nil {
		return nil
	}
	rider := *c.riderID
	return &rider
}

// ActorID returns the operator performing the scan.
func (c OutboundScanCommand) ActorID() string {
	return c.actorID
}

func (c *OutboundScanCommand) setOriginHub(originHub string) error {
	if originHub == "" {
		return errs.NewValueIsRequiredError("originHub")
	}

	c.originHub = originHub
	return nil
}

func (c *OutboundScanCommand) setAWBs(awbs []kernel.AWB) error {
	for _, awb := range awbs {
		if err := awb.Validate(); err != nil {
			return err
		}
	}

	c.awbs = append([]kernel.AWB(nil), awbs...)
	return nil
}

func (c *OutboundScanCommand) setDestinationHub(destinationHub *string) error {
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

func (c *OutboundScanCommand) setRiderID(riderID *kernel.UUID) error {
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

func (c *OutboundScanCommand) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}

	c.actorID = actorID
	return nil
}
