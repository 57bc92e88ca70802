package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetDriverAssignmentsQueryIsNotConstructed = errors.New(
		"GetDriverAssignmentsQuery must be created via NewGetDriverAssignmentsQuery constructor",
	)
)

// GetDriverAssignmentsQuery lists the working-set assignments of one driver,
// newest first. Archived assignments are not included.
//
// Example:
//
//	query, err := NewGetDriverAssignmentsQuery("driver@example.com")
//	if err != nil {
//	    return err
//	}
//
//	assignments, err := handler.Handle(ctx, query)
//	for _, a := range assignments {
//	    fmt.Printf("%s %s -> %s\n", a.Status, a.ProductName, a.Destination)
//	}
type GetDriverAssignmentsQuery struct {
	driverEmail string

	guard guard.ConstructorGuard
}

// NewGetDriverAssignmentsQuery normalizes the driver email.
func NewGetDriverAssignmentsQuery(driverEmail string) (GetDriverAssignmentsQuery, error) {
	email, err := kernel.NormalizeEmail(driverEmail)
	if err != nil {
		return GetDriverAssignmentsQuery{}, err
	}

	return GetDriverAssignmentsQuery{
		driverEmail: email,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetDriverAssignmentsQuery) DriverEmail() string {
	return q.driverEmail
}

func (q GetDriverAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverAssignmentsQueryIsNotConstructed)
}

// GetDriverAssignmentsQueryResponse is the read model of one assignment.
// Overdue is derived at query time and never stored.
type GetDriverAssignmentsQueryResponse struct {
	ID                kernel.UUID
	ProductID         kernel.UUID
	ProductName       string
	ProductImageURL   string
	ProductSKU        string
	Quantity          int
	DriverID          string
	DriverName        string
	DriverEmail       string
	Destination       string
	Coordinates       *kernel.Coordinates
	Note              string
	Status            string
	AssignedAt        time.Time
	StartedAt         *time.Time
	DeliveredAt       *time.Time
	EstimatedDelivery *time.Time
	MarkedByEmail     string
	Overdue           bool
}
