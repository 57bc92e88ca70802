package assignment

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an assignment.
//
// State transitions:
//
//	Pending ──> InTransit ──┬──> Delivered
//	                        └──> Cancelled
//
// Delivered and Cancelled are terminal. Every other request, including
// no-ops and backward moves, is rejected with ErrInvalidTransition.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	InTransit
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		InTransit: "in-transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// allowedTransitions lists, per source status, the statuses it may move to.
func allowedTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no outgoing edges
	return map[Status][]Status{
		Pending:   {InTransit},
		InTransit: {Delivered, Cancelled},
	}
}

// ParseStatus maps the wire name ("pending", "in-transit", ...) to a Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if st != Unknown && name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateTransition checks that moving from s to next is permitted.
func (s Status) ValidateTransition(next Status) error {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == next {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
}
