package jobs

import (
	"context"
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	archiveSweepJob *ArchiveSweepJob
}

func NewJobManager(
	sweeper ArchiveSweeper,
	sweepSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		archiveSweepJob: NewArchiveSweepJob(sweeper, sweepSchedule, logger),
	}
}

// StartAll runs one sweep to pick up leftovers of a previous process, then
// starts the schedules.
func (jm *JobManager) StartAll(ctx context.Context) error {
	jm.archiveSweepJob.RunNow(ctx)

	if err := jm.archiveSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start archive sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.archiveSweepJob.Stop()
}
