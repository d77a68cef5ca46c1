package jobs

import (
	"context"
	"log/slog"
	"time"

	"nlivrilik/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderJob periodically reminds administrators about orders that no
// courier has claimed within the configured threshold.
type StaleOrderJob struct {
	handler   commands.NotifyStaleOrdersCommandHandler
	threshold time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleOrderJob creates a job that scans for unassigned orders older than
// threshold on the given cron schedule.
func NewStaleOrderJob(
	handler commands.NotifyStaleOrdersCommandHandler,
	threshold time.Duration,
	schedule string,
	logger *slog.Logger,
) *StaleOrderJob {
	return &StaleOrderJob{
		handler:   handler,
		threshold: threshold,
		schedule:  schedule,
		cron:      cron.New(),
		logger:    logger.With("component", "stale_order_job"),
	}
}

// Start begins the periodic stale order scan.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewNotifyStaleOrdersCommand(j.threshold)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale order job misconfigured", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale order job failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order job started",
		"schedule", j.schedule, "threshold", j.threshold.String())
	return nil
}

// Stop stops the stale order job.
func (j *StaleOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order job stopped")
}
