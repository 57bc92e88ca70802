package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrArchivalFailure marks a transfer that did not complete. It is logged
	// and left for the sweeper, never returned to a transition's caller.
	ErrArchivalFailure = errors.New("archival failed")

	// ErrAssignmentIsActive is returned when asked to archive a non-terminal assignment.
	ErrAssignmentIsActive = errors.New("only terminal assignments can be archived")
)

// TransferOutcome reports what an archive transfer actually did.
type TransferOutcome int

const (
	// TransferCopied means the record was copied to the archive and removed.
	TransferCopied TransferOutcome = iota + 1
	// TransferDeduplicated means an archive copy already existed; only the removal ran.
	TransferDeduplicated
	// TransferNoop means the record was already gone and its archive copy exists.
	TransferNoop
)

func (o TransferOutcome) String() string {
	switch o {
	case TransferCopied:
		return metrics.ArchiveArchived
	case TransferDeduplicated, TransferNoop:
		return metrics.ArchiveSkipped
	default:
		return "unknown"
	}
}

// ArchiveAssignmentCommandHandler performs the archival transfer. It is safe
// to retry at any point: the archive is unique on the original ID, and the copy
// and the removal commit together.
type ArchiveAssignmentCommandHandler struct {
	uowFactory ArchiveUoWFactory
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

func NewArchiveAssignmentCommandHandler(
	uowFactory ArchiveUoWFactory,
	m *metrics.Metrics,
	logger *slog.Logger,
) ArchiveAssignmentCommandHandler {
	return ArchiveAssignmentCommandHandler{
		uowFactory: uowFactory,
		metrics:    m,
		logger:     logger.With("component", "archive_assignment"),
		now:        time.Now,
	}
}

// Handle copies the assignment into the archive with archivedAt = now and
// deletes it from the working set. An existing copy is never duplicated.
func (h ArchiveAssignmentCommandHandler) Handle(ctx context.Context, cmd ArchiveAssignmentCommand) (TransferOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	outcome, err := h.transfer(ctx, cmd.AssignmentID())
	if err != nil {
		h.metrics.ArchiveTransfers.WithLabelValues(metrics.ArchiveFailed).Inc()
		return 0, fmt.Errorf("%w: assignment %s: %w", ErrArchivalFailure, cmd.AssignmentID(), err)
	}

	h.metrics.ArchiveTransfers.WithLabelValues(outcome.String()).Inc()
	h.logger.InfoContext(ctx, "assignment archived",
		"assignment_id", cmd.AssignmentID().String(),
		"outcome", outcome.String(),
	)

	return outcome, nil
}

func (h ArchiveAssignmentCommandHandler) transfer(ctx context.Context, id kernel.UUID) (TransferOutcome, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()
	archiveRepo := uow.ArchiveRepository()

	a, err := assignmentRepo.GetForUpdate(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		exists, existsErr := archiveRepo.ExistsByOriginalID(ctx, id)
		if existsErr != nil {
			return 0, existsErr
		}
		if exists {
			return TransferNoop, nil
		}
		return 0, err
	}
	if err != nil {
		return 0, err
	}

	if !a.Status().IsTerminal() {
		return 0, fmt.Errorf("%w: status is %s", ErrAssignmentIsActive, a.Status())
	}

	exists, err := archiveRepo.ExistsByOriginalID(ctx, id)
	if err != nil {
		return 0, err
	}

	outcome := TransferDeduplicated
	if !exists {
		archived, archiveErr := assignment.NewArchivedAssignment(kernel.NewUUID(), a, h.now())
		if archiveErr != nil {
			return 0, archiveErr
		}
		if err = archiveRepo.Add(ctx, archived); err != nil {
			return 0, err
		}
		outcome = TransferCopied
	}

	if err = assignmentRepo.Delete(ctx, id); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return outcome, nil
}
