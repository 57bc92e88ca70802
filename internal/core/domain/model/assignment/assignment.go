package assignment

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// MaxNoteLength bounds the free-text note, in runes.
const MaxNoteLength = 500

var (
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment or RestoreAssignment")

	// ErrUnauthorized is returned when someone other than the assigned driver requests a transition.
	ErrUnauthorized = errors.New("requester is not the assigned driver")

	// ErrInvalidTransition is returned for any status change outside the allowed graph.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrActiveDeliveryExists is returned when a driver tries to start a second delivery.
	ErrActiveDeliveryExists = errors.New("driver already has an active delivery")
)

// Assignment is the aggregate root of the delivery working set. It binds a
// reserved quantity of product to one driver and one destination.
//
// Invariants:
//   - startedAt is set exactly once, on Pending -> InTransit
//   - deliveredAt is set exactly once, on InTransit -> Delivered
//   - status never moves backwards and terminal states are final
//   - only the assigned driver may change the status
type Assignment struct {
	id                kernel.UUID
	product           ProductSnapshot
	driver            Driver
	destination       Destination
	note              string
	status            Status
	assignedAt        time.Time
	startedAt         *time.Time
	deliveredAt       *time.Time
	estimatedDelivery *time.Time
	markedBy          kernel.Identity
	notifications     []Notification

	isConstructed bool
}

// State is the full persisted form of an assignment. It is used by
// repositories and by the archive, which stores an identical copy.
type State struct {
	ID                kernel.UUID
	Product           ProductSnapshot
	Driver            Driver
	Destination       Destination
	Note              string
	Status            Status
	AssignedAt        time.Time
	StartedAt         *time.Time
	DeliveredAt       *time.Time
	EstimatedDelivery *time.Time
	MarkedBy          kernel.Identity
	Notifications     []Notification
}

// NewAssignment creates a Pending assignment and logs the "assigned" notification.
func NewAssignment(
	id kernel.UUID,
	product ProductSnapshot,
	driver Driver,
	destination Destination,
	note string,
	estimatedDelivery *time.Time,
	markedBy kernel.Identity,
	now time.Time,
) (*Assignment, error) {
	a := &Assignment{
		status:        Pending,
		assignedAt:    now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setProduct(product),
		a.setDriver(driver),
		a.setDestination(destination),
		a.setNote(note),
		a.setMarkedBy(markedBy),
	); err != nil {
		return nil, err
	}
	if estimatedDelivery != nil {
		eta := estimatedDelivery.UTC()
		a.estimatedDelivery = &eta
	}
	a.notifications = []Notification{{Type: NotificationAssigned, At: a.assignedAt}}

	return a, nil
}

// RestoreAssignment rebuilds an assignment from persistence.
func RestoreAssignment(s State) (*Assignment, error) {
	a := &Assignment{
		status:            s.Status,
		assignedAt:        s.AssignedAt,
		startedAt:         s.StartedAt,
		deliveredAt:       s.DeliveredAt,
		estimatedDelivery: s.EstimatedDelivery,
		notifications:     slices.Clone(s.Notifications),
		isConstructed:     true,
	}

	if err := errors.Join(
		a.setID(s.ID),
		a.setProduct(s.Product),
		a.setDriver(s.Driver),
		a.setDestination(s.Destination),
		a.setNote(s.Note),
		a.setMarkedBy(s.MarkedBy),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// State returns a copy of the assignment's persisted form.
func (a *Assignment) State() State {
	return State{
		ID:                a.id,
		Product:           a.product,
		Driver:            a.driver,
		Destination:       a.destination,
		Note:              a.note,
		Status:            a.status,
		AssignedAt:        a.assignedAt,
		StartedAt:         copyTime(a.startedAt),
		DeliveredAt:       copyTime(a.deliveredAt),
		EstimatedDelivery: copyTime(a.estimatedDelivery),
		MarkedBy:          a.markedBy,
		Notifications:     slices.Clone(a.notifications),
	}
}

func (a *Assignment) ID() kernel.UUID {
	return a.id
}

func (a *Assignment) Product() ProductSnapshot {
	return a.product
}

func (a *Assignment) Driver() Driver {
	return a.driver
}

func (a *Assignment) Destination() Destination {
	return a.destination
}

func (a *Assignment) Note() string {
	return a.note
}

func (a *Assignment) Status() Status {
	return a.status
}

func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

func (a *Assignment) StartedAt() *time.Time {
	return copyTime(a.startedAt)
}

func (a *Assignment) DeliveredAt() *time.Time {
	return copyTime(a.deliveredAt)
}

func (a *Assignment) EstimatedDelivery() *time.Time {
	return copyTime(a.estimatedDelivery)
}

func (a *Assignment) MarkedBy() kernel.Identity {
	return a.markedBy
}

func (a *Assignment) Notifications() []Notification {
	return slices.Clone(a.notifications)
}

// IsOverdue reports whether a non-terminal assignment has passed its estimated delivery.
func (a *Assignment) IsOverdue(now time.Time) bool {
	return !a.status.IsTerminal() && a.estimatedDelivery != nil && now.After(*a.estimatedDelivery)
}

// Transition moves the assignment to next on behalf of requesterEmail and
// returns the previous status. The assignment is left untouched on error.
//
// Authorization is checked before legality, so a stranger always gets
// ErrUnauthorized regardless of the requested status. The single active
// delivery rule spans assignments and is enforced by the caller.
func (a *Assignment) Transition(next Status, requesterEmail string, now time.Time) (Status, error) {
	if !kernel.SameEmail(requesterEmail, a.driver.Email) {
		return a.status, ErrUnauthorized
	}
	if err := a.status.ValidateTransition(next); err != nil {
		return a.status, err
	}

	now = now.UTC()
	previous := a.status
	switch next {
	case InTransit:
		if a.startedAt == nil {
			a.startedAt = &now
		}
	case Delivered:
		if a.deliveredAt == nil {
			a.deliveredAt = &now
		}
	}
	a.status = next
	a.notifications = append(a.notifications, Notification{Type: notificationFor(next), At: now})

	return previous, nil
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setProduct(p ProductSnapshot) error {
	if err := p.Validate(); err != nil {
		return err
	}
	a.product = p
	return nil
}

func (a *Assignment) setDriver(d Driver) error {
	if d.Email == "" || d.ID == "" {
		return errs.NewValueIsRequiredError("driver")
	}
	a.driver = d
	return nil
}

func (a *Assignment) setDestination(d Destination) error {
	if strings.TrimSpace(d.Address) == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	a.destination = d
	return nil
}

func (a *Assignment) setNote(note string) error {
	note = strings.TrimSpace(note)
	if n := utf8.RuneCountInString(note); n > MaxNoteLength {
		return errs.NewValueIsInvalidErrorWithCause("note", fmt.Errorf("%d runes exceeds %d", n, MaxNoteLength))
	}
	a.note = note
	return nil
}

func (a *Assignment) setMarkedBy(id kernel.Identity) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("markedBy")
	}
	a.markedBy = id
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
