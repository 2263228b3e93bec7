package manifest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrManifestIsNotConstructed is returned when a Manifest instance was not
// created through NewManifest or RestoreManifest.
var ErrManifestIsNotConstructed = errors.New("Manifest must be created via NewManifest or RestoreManifest")

// Manifest is the aggregate root for a batch of AWBs moved together between
// hubs or handed to a rider. The manifest exclusively owns the association
// between itself and the AWBs it was created with; shipments only hold a
// back-reference to their current hub or rider.
//
// Invariants:
//   - expectedAWBs is fixed at creation; only receivedAWBs and status change afterward
//   - a manifest cannot be received twice
//   - the manifest number is immutable
type Manifest struct {
	// id is the internal unique identifier of the manifest record
	id kernel.UUID

	// number is the generated manifest number, immutable
	number string

	// originHub is the hub the manifest leaves from
	originHub string

	// destinationHub is the receiving hub; nil implies rider handover
	destinationHub *string

	// riderID is the rider the manifest is handed to (nil for hub-to-hub transfers)
	riderID *kernel.UUID

	// expectedAWBs is the set of AWBs declared at creation, fixed thereafter
	expectedAWBs []kernel.AWB

	// receivedAWBs is the set of AWBs actually scanned at receive time
	receivedAWBs []kernel.AWB

	// status is the current manifest lifecycle state
	status Status

	// notes carries free-form operator remarks
	notes string

	createdAt  time.Time
	receivedAt *time.Time

	guard guard.ConstructorGuard
}

// Reconciliation is the outcome of comparing a manifest's expected contents
// against the AWBs physically scanned at receive time.
type Reconciliation struct {
	// Matched are AWBs present in both sets; they move into the receiving hub.
	Matched []kernel.AWB

	// ShortShipped are AWBs expected but missing; their shipments stay in
	// their prior status and the shortfall is recorded as a discrepancy.
	ShortShipped []kernel.AWB

	// OverReceived are AWBs scanned but not declared; physical custody takes
	// precedence over paperwork, so their shipments still move into the hub.
	OverReceived []kernel.AWB
}

// HasDiscrepancy reports whether the reconciliation found any mismatch
// between expected and received contents.
func (r Reconciliation) HasDiscrepancy() bool {
	return len(r.ShortShipped) > 0 || len(r.OverReceived) > 0
}

// NewManifestNumber generates a manifest number from the creation time plus a
// short random suffix, e.g. "MAN-20250101-103000-1A2B3C4D".
func NewManifestNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(kernel.NewUUID().String(), "-", "")[:8])
	return fmt.Sprintf("MAN-%s-%s", at.UTC().Format("20060102-150405"), suffix)
}

// NewManifest creates a manifest in Created status. Grouping is provisional:
// creation does not transition any shipment; dispatch does.
//
// Validation rules:
//   - number and originHub must be non-empty
//   - awbs must be non-empty, valid and free of duplicates
//   - a manifest without a destination hub is a rider handover and requires a rider
func NewManifest(
	id kernel.UUID,
	number string,
	originHub string,
	destinationHub *string,
	awbs []kernel.AWB,
	riderID *kernel.UUID,
	notes string,
	createdAt time.Time,
) (*Manifest, error) {
	manifest := &Manifest{
		status:    Created,
		notes:     notes,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		manifest.setID(id),
		manifest.setNumber(number),
		manifest.setOriginHub(originHub),
		manifest.setDestinationHub(destinationHub),
		manifest.setRiderID(riderID),
		manifest.setExpectedAWBs(awbs),
	); err != nil {
		return nil, err
	}

	if manifest.destinationHub == nil && manifest.riderID == nil {
		return nil, errs.NewValueIsRequiredError("destinationHub or riderId")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return manifest, nil
}

// RestoreManifest reconstructs a manifest from persistence, preserving its
// exact reconciliation state.
func RestoreManifest(
	id kernel.UUID,
	number string,
	originHub string,
	destinationHub *string,
	awbs []kernel.AWB,
	riderID *kernel.UUID,
	receivedAWBs []kernel.AWB,
	status Status,
	notes string,
	createdAt time.Time,
	receivedAt *time.Time,
) (*Manifest, error) {
	manifest := &Manifest{
		notes:     notes,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		manifest.setID(id),
		manifest.setNumber(number),
		manifest.setOriginHub(originHub),
		manifest.setDestinationHub(destinationHub),
		manifest.setRiderID(riderID),
		manifest.setExpectedAWBs(awbs),
		manifest.setStatus(status),
	); err != nil {
		return nil, err
	}

	for _, awb := range receivedAWBs {
		if err := awb.Validate(); err != nil {
			return nil, err
		}
	}
	manifest.receivedAWBs = append([]kernel.AWB(nil), receivedAWBs...)

	if receivedAt != nil {
		at := *receivedAt
		manifest.receivedAt = &at
	}

	return manifest, nil
}

// Validate ensures the Manifest instance was properly constructed.
func (m *Manifest) Validate() error {
	if m == nil {
		return ErrManifestIsNotConstructed
	}
	return m.guard.Validate(ErrManifestIsNotConstructed)
}

// IsEqual compares two manifests by their unique identifiers.
func (m *Manifest) IsEqual(other *Manifest) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// ID returns the manifest's internal identifier.
func (m *Manifest) ID() kernel.UUID {
	return m.id
}

// Number returns the generated manifest number.
func (m *Manifest) Number() string {
	return m.number
}

// OriginHub returns the hub the manifest leaves from.
func (m *Manifest) OriginHub() string {
	return m.originHub
}

// DestinationHub returns the receiving hub, or nil for rider handovers.
func (m *Manifest) DestinationHub() *string {
	if m.destinationHub == nil {
		return nil
	}
	hub := *m.destinationHub
	return &hub
}

// RiderID returns the assigned rider, or nil for hub-to-hub transfers.
func (m *Manifest) RiderID() *kernel.UUID {
	if m.riderID == nil {
		return nil
	}
	rider := *m.riderID
	return &rider
}

// ExpectedAWBs returns the AWB set declared at creation.
// The returned slice is a copy to prevent external modification.
func (m *Manifest) ExpectedAWBs() []kernel.AWB {
	return append([]kernel.AWB(nil), m.expectedAWBs...)
}

// ReceivedAWBs returns the AWB set scanned at receive time.
// Empty until the manifest is received.
func (m *Manifest) ReceivedAWBs() []kernel.AWB {
	return append([]kernel.AWB(nil), m.receivedAWBs...)
}

// Status returns the current manifest status.
func (m *Manifest) Status() Status {
	return m.status
}

// Notes returns the operator remarks attached to the manifest.
func (m *Manifest) Notes() string {
	return m.notes
}

// CreatedAt returns the manifest creation timestamp.
func (m *Manifest) CreatedAt() time.Time {
	return m.createdAt
}

// ReceivedAt returns the reconciliation timestamp, or nil if not received.
func (m *Manifest) ReceivedAt() *time.Time {
	if m.receivedAt == nil {
		return nil
	}
	at := *m.receivedAt
	return &at
}

// Contains reports whether the given AWB was declared at creation.
func (m *Manifest) Contains(awb kernel.AWB) bool {
	for _, expected := range m.expectedAWBs {
		if expected.IsEqual(awb) {
			return true
		}
	}
	return false
}

// Dispatch marks the manifest as having left its origin hub.
// Only a manifest in Created status can be dispatched.
func (m *Manifest) Dispatch() error {
	newStatus, err := m.status.Dispatch()
	if err != nil {
		return err
	}
	m.status = newStatus
	return nil
}

// Receive reconciles the physically scanned AWBs against the declared
// contents and moves the manifest to its terminal status.
//
// The set difference drives the outcome:
//   - expected ∩ received: matched, shipments move into the receiving hub
//   - expected \ received: short-shipped, recorded as a discrepancy
//   - received \ expected: over-received, recorded, custody still transfers
//
// Any discrepancy makes the terminal status Discrepant rather than Received,
// but the operation completes either way. Receiving an already-reconciled
// manifest fails with AlreadyReceivedError and performs no mutation.
func (m *Manifest) Receive(received []kernel.AWB, at time.Time) (Reconciliation, error) {
	if m.status.IsFinal() {
		return Reconciliation{}, errs.NewAlreadyReceivedError(m.number)
	}
	if at.IsZero() {
		return Reconciliation{}, errs.NewValueIsRequiredError("receivedAt")
	}

	receivedSet := make(map[string]kernel.AWB, len(received))
	deduped := make([]kernel.AWB, 0, len(received))
	for _, awb := range received {
		if err := awb.Validate(); err != nil {
			return Reconciliation{}, err
		}
		if _, seen := receivedSet[awb.String()]; seen {
			continue
		}
		receivedSet[awb.String()] = awb
		deduped = append(deduped, awb)
	}

	var reconciliation Reconciliation
	for _, expected := range m.expectedAWBs {
		if _, ok := receivedSet[expected.String()]; ok {
			reconciliation.Matched = append(reconciliation.Matched, expected)
		} else {
			reconciliation.ShortShipped = append(reconciliation.ShortShipped, expected)
		}
	}
	for _, awb := range deduped {
		if !m.Contains(awb) {
			reconciliation.OverReceived = append(reconciliation.OverReceived, awb)
		}
	}

	m.receivedAWBs = deduped
	receivedAt := at
	m.receivedAt = &receivedAt
	if reconciliation.HasDiscrepancy() {
		m.status = Discrepant
	} else {
		m.status = Received
	}

	return reconciliation, nil
}

func (m *Manifest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Manifest) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("manifest number")
	}
	m.number = number
	return nil
}

func (m *Manifest) setOriginHub(originHub string) error {
	if originHub == "" {
		return errs.NewValueIsRequiredError("originHub")
	}
	m.originHub = originHub
	return nil
}

func (m *Manifest) setDestinationHub(destinationHub *string) error {
	if destinationHub == nil {
		return nil
	}
	if *destinationHub == "" {
		return errs.NewValueIsRequiredError("destinationHub")
	}
	hub := *destinationHub
	m.destinationHub = &hub
	return nil
}

func (m *Manifest) setRiderID(riderID *kernel.UUID) error {
	if riderID == nil {
		return nil
	}
	if err := riderID.Validate(); err != nil {
		return err
	}
	rider := *riderID
	m.riderID = &rider
	return nil
}

func (m *Manifest) setExpectedAWBs(awbs []kernel.AWB) error {
	if len(awbs) == 0 {
		return errs.NewValueIsRequiredError("awbNumbers")
	}

	seen := make(map[string]bool, len(awbs))
	expected := make([]kernel.AWB, 0, len(awbs))
	for _, awb := range awbs {
		if err := awb.Validate(); err != nil {
			return err
		}
		if seen[awb.String()] {
			return errs.NewValueIsInvalidErrorWithCause("awbNumbers",
				fmt.Errorf("duplicate AWB %s", awb))
		}
		seen[awb.String()] = true
		expected = append(expected, awb)
	}

	m.expectedAWBs = expected
	return nil
}

func (m *Manifest) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	m.status = status
	return nil
}
