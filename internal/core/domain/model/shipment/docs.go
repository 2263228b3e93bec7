// Package shipment provides domain entities and business logic for parcel
// lifecycle management in the logistics pipeline. It implements the Shipment
// aggregate root together with the lifecycle state machine.
//
// The package includes:
//   - Shipment: The aggregate root that manages shipment identity, custody, deadlines and lifecycle
//   - Status: A state machine that enforces the fixed pipeline transition graph
//
// Key business rules:
//   - A shipment is identified by an immutable AWB tracking number
//   - Status transitions only ever follow an edge of the lifecycle graph
//   - lastStatusChangeAt moves with every accepted transition and drives SLA comparisons
//   - Re-scans to the current status are a strict no-op for hub and rider custody scans
//   - Cancellation is only permitted before physical pickup
//   - Terminal shipments are retained for audit, never deleted
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package shipment
