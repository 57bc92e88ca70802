package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrArchiveAssignmentCommandIsNotConstructed = errors.New(
	"ArchiveAssignmentCommand must be created via NewArchiveAssignmentCommand constructor",
)

// ArchiveAssignmentCommand moves one terminal assignment from the working set
// into the archive.
type ArchiveAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewArchiveAssignmentCommand(assignmentID kernel.UUID) (ArchiveAssignmentCommand, error) {
	if err := assignmentID.Validate(); err != nil {
		return ArchiveAssignmentCommand{}, err
	}

	return ArchiveAssignmentCommand{
		assignmentID: assignmentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ArchiveAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrArchiveAssignmentCommandIsNotConstructed)
}

func (c ArchiveAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}
