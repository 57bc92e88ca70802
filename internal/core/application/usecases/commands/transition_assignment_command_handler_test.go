package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type transitionFixture struct {
	assignments *MockAssignmentRepository
	slots       *MockDriverSlotRepository
	uow         *MockUoW
	factory     *MockTransitionUoWFactory

	archiveAssignments *MockAssignmentRepository
	archive            *MockArchiveRepository
	archiveUoW         *MockUoW
	archiveFactory     *MockArchiveUoWFactory

	metrics *metrics.Metrics
}

func newTransitionFixture() *transitionFixture {
	f := &transitionFixture{
		assignments:        new(MockAssignmentRepository),
		slots:              new(MockDriverSlotRepository),
		uow:                new(MockUoW),
		factory:            new(MockTransitionUoWFactory),
		archiveAssignments: new(MockAssignmentRepository),
		archive:            new(MockArchiveRepository),
		archiveUoW:         new(MockUoW),
		archiveFactory:     new(MockArchiveUoWFactory),
		metrics:            metrics.NewUnregistered(),
	}
	f.factory.On("Create").Return(f.uow).Maybe()
	f.uow.On("AssignmentRepository").Return(f.assignments).Maybe()
	f.uow.On("DriverSlotRepository").Return(f.slots).Maybe()
	f.archiveFactory.On("Create").Return(f.archiveUoW).Maybe()
	f.archiveUoW.On("AssignmentRepository").Return(f.archiveAssignments).Maybe()
	f.archiveUoW.On("ArchiveRepository").Return(f.archive).Maybe()
	return f
}

func (f *transitionFixture) handler(policy services.ArchivePolicy) commands.TransitionAssignmentCommandHandler {
	archiver := commands.NewArchiveAssignmentCommandHandler(f.archiveFactory, f.metrics, discardLogger())
	return commands.NewTransitionAssignmentCommandHandler(f.factory, archiver, policy, f.metrics, discardLogger())
}

func transitionCommand(t *testing.T, id kernel.UUID, status assignment.Status, email string) commands.TransitionAssignmentCommand {
	t.Helper()
	cmd, err := commands.NewTransitionAssignmentCommand(id, status, email)
	require.NoError(t, err)
	return cmd
}

func TestTransitionAssignmentCommandHandler_Handle_Start(t *testing.T) {
	ctx := t.Context()
	a := assignmentIn(t, assignment.Pending)
	f := newTransitionFixture()

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.assignments.On("GetForUpdate", mock.Anything, a.ID()).Return(a, nil).Once(),
		f.slots.On("Claim", mock.Anything, driverEmail, a.ID()).Return(nil).Once(),
		f.assignments.On("Update", mock.Anything, a).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	res, err := f.handler(services.NewArchivePolicy(false)).
		Handle(ctx, transitionCommand(t, a.ID(), assignment.InTransit, "DRIVER@example.com"))

	require.NoError(t, err)
	assert.Equal(t, assignment.InTransit, res.Assignment.Status())
	assert.Equal(t, assignment.Pending, res.PreviousStatus)
	assert.NotNil(t, res.Assignment.StartedAt())
	assert.False(t, res.Archived)

	require.Len(t, res.Effects, 1)
	assert.Equal(t, staffIdentity(t), res.Effects[0].Recipient)
	assert.Equal(t, ports.EventDeliveryStatusUpdate, res.Effects[0].Event.Type)
	assert.Equal(t, "pending", res.Effects[0].Event.Data.PreviousStatus)
	assert.Equal(t, "in-transit", res.Effects[0].Event.Data.NewStatus)
	assert.Equal(t, "Dana Driver", res.Effects[0].Event.Data.DriverName)

	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.Transitions.WithLabelValues("pending", "in-transit")), 0)
	f.uow.AssertExpectations(t)
	f.slots.AssertExpectations(t)
	f.archiveFactory.AssertNotCalled(t, "Create")
}

func TestTransitionAssignmentCommandHandler_Handle_ActiveDeliveryExists(t *testing.T) {
	ctx := t.Context()
	a := assignmentIn(t, assignment.Pending)
	f := newTransitionFixture()

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.assignments.On("GetForUpdate", mock.Anything, a.ID()).Return(a, nil).Once()
	f.slots.On("Claim", mock.Anything, driverEmail, a.ID()).Return(assignment.ErrActiveDeliveryExists).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	res, err := f.handler(services.NewArchivePolicy(false)).
		Handle(ctx, transitionCommand(t, a.ID(), assignment.InTransit, driverEmail))

	require.ErrorIs(t, err, assignment.ErrActiveDeliveryExists)
	assert.Nil(t, res.Assignment)
	f.assignments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionAssignmentCommandHandler_Handle_DeliverArchivesAndReleasesSlot(t *testing.T) {
	ctx := t.Context()
	a := assignmentIn(t, assignment.InTransit)
	f := newTransitionFixture()

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.assignments.On("GetForUpdate", mock.Anything, a.ID()).Return(a, nil).Once()
	f.slots.On("Release", mock.Anything, driverEmail, a.ID()).Return(nil).Once()
	f.assignments.On("Update", mock.Anything, a).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	f.archiveUoW.On("Begin", ctx).Return(nil).Once()
	f.archiveAssignments.On("GetForUpdate", mock.Anything, a.ID()).Return(a, nil).Once()
	f.archive.On("ExistsByOriginalID", mock.Anything, a.ID()).Return(false, nil).Once()
	f.archive.On("Add", mock.Anything, mock.MatchedBy(func(archived *assignment.ArchivedAssignment) bool {
		return archived.OriginalID() == a.ID() && !archived.ArchivedAt().IsZero()
	})).Return(nil).Once()
	f.archiveAssignments.On("Delete", mock.Anything, a.ID()).Return(nil).Once()
	f.archiveUoW.On("Commit", ctx).Return(nil).Once()
	f.archiveUoW.On("Rollback", ctx).Return(nil).Once()

	res, err := f.handler(services.NewArchivePolicy(false)).
		Handle(ctx, transitionCommand(t, a.ID(), assignment.Delivered, driverEmail))

	require.NoError(t, err)
	assert.True(t, res.Archived)
	assert.NotNil(t, res.Assignment.DeliveredAt())
	f.slots.AssertExpectations(t)
	f.archive.AssertExpectations(t)
	f.archiveAssignments.AssertExpectations(t)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.ArchiveTransfers.WithLabelValues(metrics.ArchiveArchived)), 0)
}

func TestTransitionAssignmentCommandHandler_Handle_ArchivalFailureIsNotSurfaced(t *testing.T) {
	ctx := t.Context()
	a := assignmentIn(t, assignment.InTransit)
	f := newTransitionFixture()

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.assignments.On("GetForUpdate", mock.Anything, a.ID()).Return(a, nil).Once()
	f.slots.On("Release", mock.Anything, driverEmail, a.ID()).Return(nil).Once()
	f.assignments.On("Update", mock.Anything, a).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	f.archiveUoW.On("Begin", ctx).Return(errors.New("connection reset")).Once()

	res, err := f.handler(services.NewArchivePolicy(false)).
		Handle(ctx, transitionCommand(t, a.ID(), assignment.Delivered, driverEmail))

	require.NoError(t, err)
	assert.False(t, res.Archived)
	assert.Equal(t, assignment.Delivered, res.Assignment.Status())
	require.Len(t, res.Effects, 1)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.ArchiveTransfers.WithLabelValues(metrics.ArchiveFailed)), 0)
}

func TestTransitionAssignmentCommandHandler_Handle_CancelKeptByDefaultPolicy(t *testing.T) {
	ctx := t.Context()
	a := assignmentIn(t, assignment.InTransit)
	f := newTransitionFixture()

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.assignments.On("GetForUpdate", mock.Anything, a.ID()).Return(a, nil).Once()
	f.slots.On("Release", mock.Anything, driverEmail, a.ID()).Return(nil).Once()
	f.assignments.On("Update", mock.Anything, a).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	res, err := f.handler(services.NewArchivePolicy(false)).
		Handle(ctx, transitionCommand(t, a.ID(), assignment.Cancelled, driverEmail))

	require.NoError(t, err)
	assert.Equal(t, assignment.Cancelled, res.Assignment.Status())
	assert.False(t, res.Archived)
	f.archiveFactory.AssertNotCalled(t, "Create")
}

func TestTransitionAssignmentCommandHandler_Handle_RejectedTransitionsLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		from    assignment.Status
		to      assignment.Status
		email   string
		wantErr error
	}{
		{"stranger", assignment.Pending, assignment.InTransit, "someone@example.com", assignment.ErrUnauthorized},
		{"stranger on illegal edge", assignment.Delivered, assignment.Pending, "someone@example.com", assignment.ErrUnauthorized},
		{"skip in-transit", assignment.Pending, assignment.Delivered, driverEmail, assignment.ErrInvalidTransition},
		{"no-op", assignment.InTransit, assignment.InTransit, driverEmail, assignment.ErrInvalidTransition},
		{"backwards", assignment.InTransit, assignment.Pending, driverEmail, assignment.ErrInvalidTransition},
		{"resurrect", assignment.Cancelled, assignment.InTransit, driverEmail, assignment.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			a := assignmentIn(t, tt.from)
			before := a.State()
			f := newTransitionFixture()

			f.uow.On("Begin", ctx).Return(nil).Once()
			f.assignments.On("GetForUpdate", mock.Anything, a.ID()).Return(a, nil).Once()
			f.uow.On("Rollback", ctx).Return(nil).Once()

			_, err := f.handler(services.NewArchivePolicy(true)).Handle(ctx, transitionCommand(t, a.ID(), tt.to, tt.email))

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, a.State())
			f.slots.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
			f.assignments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestTransitionAssignmentCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	f := newTransitionFixture()

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.assignments.On("GetForUpdate", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("assignment", id)).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err := f.handler(services.NewArchivePolicy(false)).Handle(ctx, transitionCommand(t, id, assignment.InTransit, driverEmail))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionAssignmentCommandHandler_Handle_ValidationError(t *testing.T) {
	f := newTransitionFixture()

	_, err := f.handler(services.NewArchivePolicy(false)).Handle(t.Context(), commands.TransitionAssignmentCommand{})

	require.ErrorIs(t, err, commands.ErrTransitionAssignmentCommandIsNotConstructed)
}
