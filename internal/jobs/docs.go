// Package jobs provides scheduled background tasks for the logistics pipeline.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SLASweepJob - Periodically detects shipments that breached their stage
// SLA and enqueues violation jobs for the escalation workers
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(detectViolationsHandler, sweepInterval, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses an "@every <n>s" expression built from the configured
// interval. An overlap guard skips ticks that fire while a sweep is still
// running, keeping at most one sweep in flight per instance.
//
// # Error Handling
//
// - A failed sweep is logged and retried on the next tick; the detector
// aborts a cycle on store read failures without enqueueing anything
// - Failed job starts will stop any already running jobs
package jobs
