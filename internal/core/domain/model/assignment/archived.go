package assignment

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

var ErrArchivedAssignmentIsNotConstructed = errors.New(
	"ArchivedAssignment must be created via NewArchivedAssignment or RestoreArchivedAssignment")

// ArchivedAssignment is an immutable copy of an assignment that left the working set.
type ArchivedAssignment struct {
	id         kernel.UUID
	state      State
	archivedAt time.Time

	isConstructed bool
}

// NewArchivedAssignment copies a into a new archive entry stamped with now.
func NewArchivedAssignment(id kernel.UUID, a *Assignment, now time.Time) (*ArchivedAssignment, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return RestoreArchivedAssignment(id, a.State(), now.UTC())
}

func RestoreArchivedAssignment(id kernel.UUID, s State, archivedAt time.Time) (*ArchivedAssignment, error) {
	if err := errors.Join(id.Validate(), s.ID.Validate()); err != nil {
		return nil, err
	}
	return &ArchivedAssignment{
		id:            id,
		state:         s,
		archivedAt:    archivedAt,
		isConstructed: true,
	}, nil
}

func (a *ArchivedAssignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrArchivedAssignmentIsNotConstructed
	}
	return nil
}

func (a *ArchivedAssignment) ID() kernel.UUID {
	return a.id
}

// OriginalID is the ID the record had in the working set.
func (a *ArchivedAssignment) OriginalID() kernel.UUID {
	return a.state.ID
}

func (a *ArchivedAssignment) ArchivedAt() time.Time {
	return a.archivedAt
}

// State returns the archived copy. The slices are cloned so callers cannot mutate the entry.
func (a *ArchivedAssignment) State() State {
	s := a.state
	s.Notifications = append([]Notification(nil), a.state.Notifications...)
	return s
}
