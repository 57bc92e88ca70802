package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/effects"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
)

// TransitionAssignmentResult is the committed assignment plus what happened after the commit.
type TransitionAssignmentResult struct {
	Assignment     *assignment.Assignment
	PreviousStatus assignment.Status
	// Archived is true when the assignment left the working set in this call.
	Archived bool
	Effects  []effects.Effect
}

// TransitionAssignmentCommandHandler applies a driver's status change.
//
// Concurrency: the assignment row is locked for the whole transaction, so two
// transitions of one assignment serialize and the loser sees the winner's
// status. Starting a delivery claims the driver's slot in the same
// transaction, so two concurrent starts for one driver cannot both commit.
type TransitionAssignmentCommandHandler struct {
	uowFactory TransitionUoWFactory
	archiver   ArchiveAssignmentCommandHandler
	policy     services.ArchivePolicy
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

func NewTransitionAssignmentCommandHandler(
	uowFactory TransitionUoWFactory,
	archiver ArchiveAssignmentCommandHandler,
	policy services.ArchivePolicy,
	m *metrics.Metrics,
	logger *slog.Logger,
) TransitionAssignmentCommandHandler {
	return TransitionAssignmentCommandHandler{
		uowFactory: uowFactory,
		archiver:   archiver,
		policy:     policy,
		metrics:    m,
		logger:     logger.With("component", "transition_assignment"),
		now:        time.Now,
	}
}

// Handle returns assignment.ErrUnauthorized, assignment.ErrInvalidTransition,
// assignment.ErrActiveDeliveryExists or errs.ErrObjectNotFound unchanged. On
// any of them the transaction is rolled back and nothing is persisted.
//
// When the new status is archivable the transfer runs right after the commit.
// Its failure is logged and left to the sweeper; the transition still succeeds.
func (h TransitionAssignmentCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionAssignmentCommand,
) (TransitionAssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionAssignmentResult{}, err
	}

	a, previous, err := h.apply(ctx, cmd)
	if err != nil {
		return TransitionAssignmentResult{}, err
	}

	h.metrics.Transitions.WithLabelValues(previous.String(), a.Status().String()).Inc()
	h.logger.InfoContext(ctx, "assignment status changed",
		"assignment_id", a.ID().String(),
		"from", previous.String(),
		"to", a.Status().String(),
		"driver", a.Driver().Email,
	)

	result := TransitionAssignmentResult{
		Assignment:     a,
		PreviousStatus: previous,
		Effects:        statusUpdateEffects(a, previous),
	}

	if h.policy.Archivable(a.Status()) {
		result.Archived = h.archive(ctx, a)
	}

	return result, nil
}

func (h TransitionAssignmentCommandHandler) apply(
	ctx context.Context,
	cmd TransitionAssignmentCommand,
) (*assignment.Assignment, assignment.Status, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, assignment.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()
	slotRepo := uow.DriverSlotRepository()

	a, err := assignmentRepo.GetForUpdate(ctx, cmd.AssignmentID())
	if err != nil {
		return nil, assignment.Unknown, err
	}

	previous, err := a.Transition(cmd.Status(), cmd.RequesterEmail(), h.now())
	if err != nil {
		return nil, assignment.Unknown, err
	}

	driverEmail := a.Driver().Email
	switch {
	case a.Status() == assignment.InTransit:
		if err = slotRepo.Claim(ctx, driverEmail, a.ID()); err != nil {
			return nil, assignment.Unknown, err
		}
	case previous == assignment.InTransit:
		if err = slotRepo.Release(ctx, driverEmail, a.ID()); err != nil {
			return nil, assignment.Unknown, err
		}
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
		return nil, assignment.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, assignment.Unknown, err
	}

	return a, previous, nil
}

func (h TransitionAssignmentCommandHandler) archive(ctx context.Context, a *assignment.Assignment) bool {
	cmd, err := NewArchiveAssignmentCommand(a.ID())
	if err == nil {
		_, err = h.archiver.Handle(ctx, cmd)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "archival after transition failed, left for sweeper",
			"assignment_id", a.ID().String(),
			"status", a.Status().String(),
			"error", err,
		)
		return false
	}
	return true
}

func statusUpdateEffects(a *assignment.Assignment, previous assignment.Status) []effects.Effect {
	return []effects.Effect{
		effects.PublishEvent(a.MarkedBy(), ports.Event{
			Type: ports.EventDeliveryStatusUpdate,
			Data: ports.EventData{
				AssignmentID:   a.ID().String(),
				ProductName:    a.Product().Name,
				DriverName:     a.Driver().Name,
				Destination:    a.Destination().Address,
				PreviousStatus: previous.String(),
				NewStatus:      a.Status().String(),
			},
		}),
	}
}
