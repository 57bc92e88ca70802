package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/metrics"
)

// SweepResult summarizes one sweep.
type SweepResult struct {
	Scanned  int
	Archived int
	Failed   int
}

// SweepArchiveCommandHandler archives every working-set record in an
// archivable status. It recovers from crashes between a transition's commit
// and its archival. Running it twice in a row does nothing the second time.
type SweepArchiveCommandHandler struct {
	uowFactory ArchiveUoWFactory
	archiver   ArchiveAssignmentCommandHandler
	policy     services.ArchivePolicy
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewSweepArchiveCommandHandler(
	uowFactory ArchiveUoWFactory,
	archiver ArchiveAssignmentCommandHandler,
	policy services.ArchivePolicy,
	m *metrics.Metrics,
	logger *slog.Logger,
) SweepArchiveCommandHandler {
	return SweepArchiveCommandHandler{
		uowFactory: uowFactory,
		archiver:   archiver,
		policy:     policy,
		metrics:    m,
		logger:     logger.With("component", "archive_sweep"),
	}
}

// Handle transfers each candidate in its own transaction. A failed transfer
// is counted and logged and does not stop the sweep; only a failed scan or a
// cancelled context returns an error.
func (h SweepArchiveCommandHandler) Handle(ctx context.Context, cmd SweepArchiveCommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	h.metrics.SweepRuns.Inc()

	ids, err := h.uowFactory.Create().AssignmentRepository().ListIDsByStatus(ctx, h.policy.Statuses()...)
	if err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{Scanned: len(ids)}
	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		archiveCmd, cmdErr := NewArchiveAssignmentCommand(id)
		if cmdErr != nil {
			result.Failed++
			continue
		}

		outcome, transferErr := h.archiver.Handle(ctx, archiveCmd)
		if transferErr != nil {
			result.Failed++
			h.logger.ErrorContext(ctx, "sweep transfer failed", "assignment_id", id.String(), "error", transferErr)
			continue
		}
		if outcome != TransferNoop {
			result.Archived++
		}
	}

	return result, nil
}
