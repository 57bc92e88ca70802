package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrTransitionAssignmentCommandIsNotConstructed = errors.New(
	"TransitionAssignmentCommand must be created via NewTransitionAssignmentCommand constructor",
)

// TransitionAssignmentCommand asks to move an assignment to a new status on
// behalf of the driver identified by requesterEmail.
type TransitionAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID   kernel.UUID
	status         assignment.Status
	requesterEmail string

	guard guard.ConstructorGuard
}

// NewTransitionAssignmentCommand validates the shape of the request only.
// Whether the transition is allowed is decided against the stored assignment.
func NewTransitionAssignmentCommand(
	assignmentID kernel.UUID,
	status assignment.Status,
	requesterEmail string,
) (TransitionAssignmentCommand, error) {
	cmd := TransitionAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAssignmentID(assignmentID),
		cmd.setStatus(status),
		cmd.setRequesterEmail(requesterEmail),
	); err != nil {
		return TransitionAssignmentCommand{}, err
	}

	return cmd, nil
}

func (c TransitionAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionAssignmentCommandIsNotConstructed)
}

func (c TransitionAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

func (c TransitionAssignmentCommand) Status() assignment.Status {
	return c.status
}

func (c TransitionAssignmentCommand) RequesterEmail() string {
	return c.requesterEmail
}

func (c *TransitionAssignmentCommand) setAssignmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.assignmentID = id
	return nil
}

func (c *TransitionAssignmentCommand) setStatus(status assignment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *TransitionAssignmentCommand) setRequesterEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("requesterEmail")
	}
	c.requesterEmail = email
	return nil
}
