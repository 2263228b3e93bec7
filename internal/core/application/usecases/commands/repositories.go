// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parceltrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// ManifestRepoFactory provides access to the manifest repository within a transaction.
	ManifestRepoFactory interface {
		ManifestRepository() ports.ManifestRepository
	}

	// ShipmentUoW manages transactions for shipment-only operations.
	// Used when commands only touch shipment aggregates.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	//
	// Batch handlers call Create once per scanned item so each item commits
	// or rolls back on its own; a failed item never drags down its batch.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// UoW manages transactions across shipment and manifest aggregates.
	// Used for commands that coordinate changes between both aggregate types.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   shipmentRepo := uow.ShipmentRepository()
	//   manifestRepo := uow.ManifestRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ShipmentRepoFactory
		ManifestRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
