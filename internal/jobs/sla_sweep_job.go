package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"parceltrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SLASweepJob runs the periodic SLA violation sweep. The interval comes from
// configuration; a tick that fires while the previous sweep is still running
// is skipped, so at most one sweep is in flight per instance.
type SLASweepJob struct {
	handler commands.DetectViolationsCommandHandler
	cron    *cron.Cron
	spec    string
	running atomic.Bool
	logger  *slog.Logger
}

// NewSLASweepJob creates the sweep job firing every intervalSeconds.
func NewSLASweepJob(
	handler commands.DetectViolationsCommandHandler,
	intervalSeconds int,
	logger *slog.Logger,
) *SLASweepJob {
	return &SLASweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		spec:    fmt.Sprintf("@every %ds", intervalSeconds),
		logger:  logger.With("component", "sla_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *SLASweepJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "SLA sweep job started", "interval", j.spec)
	return nil
}

// sweep runs one detection cycle. A tick arriving while a sweep is still in
// flight returns immediately without touching the handler.
func (j *SLASweepJob) sweep() {
	if !j.running.CompareAndSwap(false, true) {
		j.logger.Warn("previous sweep still running, skipping tick")
		return
	}
	defer j.running.Store(false)

	ctx := context.Background()
	cmd, err := commands.NewDetectViolationsCommand()
	if err != nil {
		j.logger.ErrorContext(ctx, "SLA sweep failed", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "SLA sweep failed", "error", err)
		return
	}
	if result.Detected > 0 {
		j.logger.InfoContext(ctx, "SLA sweep completed",
			"detected", result.Detected, "enqueued", result.Enqueued)
	}
}

// Stop stops the sweep job.
func (j *SLASweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "SLA sweep job stopped")
}
