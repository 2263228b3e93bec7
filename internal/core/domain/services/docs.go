// Package services provides domain services that implement business logic
// spanning multiple aggregates in the logistics pipeline.
//
// The package includes:
//   - SLAInspector: A domain service deciding which shipments have breached
//     their stage SLA, partitioning the status space into pickup, delivery
//     and in-transit stages
//
// Domain services coordinate between aggregates, implementing business logic
// that doesn't naturally belong to a single aggregate root.
package services
