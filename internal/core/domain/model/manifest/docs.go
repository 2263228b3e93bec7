// Package manifest provides domain entities for hub consolidation in the
// logistics pipeline. It implements the Manifest aggregate root and the
// reconciliation rules applied when a consolidated transfer is received.
//
// The package includes:
//   - Manifest: The aggregate root owning a batch of AWBs moved together
//   - Status: A state machine for the manifest lifecycle (created -> dispatched -> received | discrepant)
//   - Reconciliation: The set-difference outcome of a receive (matched, short-shipped, over-received)
//   - SortDecision: Advisory per-AWB routing metadata recorded inside a hub
//
// Key business rules:
//   - Expected contents are fixed at creation; only receivedAWBs and status change afterward
//   - A manifest cannot be received twice; the rejection is idempotent
//   - A discrepancy makes the terminal status discrepant but never aborts the
//     transfer; physical package flow cannot roll back
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package manifest
