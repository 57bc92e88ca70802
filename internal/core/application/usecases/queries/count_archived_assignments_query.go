package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCountArchivedAssignmentsQueryIsNotConstructed = errors.New(
		"CountArchivedAssignmentsQuery must be created via NewCountArchivedAssignmentsQuery constructor",
	)
)

// CountArchivedAssignmentsQuery counts the archived completed deliveries of a driver.
type CountArchivedAssignmentsQuery struct {
	driverEmail string

	guard guard.ConstructorGuard
}

func NewCountArchivedAssignmentsQuery(driverEmail string) (CountArchivedAssignmentsQuery, error) {
	email, err := kernel.NormalizeEmail(driverEmail)
	if err != nil {
		return CountArchivedAssignmentsQuery{}, err
	}

	return CountArchivedAssignmentsQuery{
		driverEmail: email,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q CountArchivedAssignmentsQuery) DriverEmail() string {
	return q.driverEmail
}

func (q CountArchivedAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrCountArchivedAssignmentsQueryIsNotConstructed)
}
