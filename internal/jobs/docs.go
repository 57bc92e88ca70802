// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// ArchiveSweepJob runs SweepArchiveCommandHandler on SWEEP_SCHEDULE (default
// "@every 1m"). A transition to delivered archives the assignment right away;
// the sweep only catches transfers that failed or were interrupted.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweepHandler, cfg.SweepSchedule, logger)
//
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. Per-assignment
// failures are counted in the sweep result and logged by the handler.
package jobs
