package jobs

import (
	"context"
	"log/slog"
	"sync"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const DefaultSweepSchedule = "@every 1m"

// ArchiveSweeper is satisfied by commands.SweepArchiveCommandHandler.
type ArchiveSweeper interface {
	Handle(ctx context.Context, cmd commands.SweepArchiveCommand) (commands.SweepResult, error)
}

// ArchiveSweepJob periodically moves archivable assignments out of the
// working set. It repairs transfers that failed right after a transition.
// Runs never overlap: a tick is skipped while the previous sweep is running.
type ArchiveSweepJob struct {
	sweeper  ArchiveSweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewArchiveSweepJob accepts standard five-field cron specs, six-field specs
// with seconds, and descriptors such as "@every 30s".
func NewArchiveSweepJob(sweeper ArchiveSweeper, schedule string, logger *slog.Logger) *ArchiveSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)
	ctx, cancel := context.WithCancel(context.Background())

	return &ArchiveSweepJob{
		sweeper:  sweeper,
		schedule: schedule,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "archive_sweep_job"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start schedules the sweep.
func (j *ArchiveSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunNow(j.ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Archive sweep job started", "schedule", j.schedule)
	return nil
}

// RunNow performs one sweep on the caller's goroutine.
func (j *ArchiveSweepJob) RunNow(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()

	res, err := j.sweeper.Handle(ctx, commands.NewSweepArchiveCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Archive sweep failed", "error", err)
		return
	}
	if res.Scanned == 0 {
		return
	}

	level := slog.LevelInfo
	if res.Failed > 0 {
		level = slog.LevelWarn
	}
	j.logger.Log(ctx, level, "Archive sweep finished",
		"scanned", res.Scanned,
		"archived", res.Archived,
		"failed", res.Failed,
	)
}

// Stop cancels an in-flight sweep and waits for it to return.
func (j *ArchiveSweepJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Archive sweep job stopped")
}
