package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/product"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

const driverEmail = "driver@example.com"

func staffIdentity(t *testing.T) kernel.Identity {
	t.Helper()
	id, err := kernel.NewIdentity("staff-1", "staff@example.com")
	require.NoError(t, err)
	return id
}

func testDriver(t *testing.T) assignment.Driver {
	t.Helper()
	d, err := assignment.NewDriver("drv-1", "Dana Driver", driverEmail)
	require.NoError(t, err)
	return d
}

func testProduct(t *testing.T, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), "Office chair", "CH-001", "https://img.example.com/ch.png", stock, 4999)
	require.NoError(t, err)
	return p
}

// assignmentIn builds an assignment and walks it to status through legal transitions.
func assignmentIn(t *testing.T, status assignment.Status) *assignment.Assignment {
	t.Helper()

	snapshot, err := assignment.NewProductSnapshot(kernel.NewUUID(), "Office chair", "", "CH-001", 1)
	require.NoError(t, err)
	dest, err := assignment.NewDestination("12 Harbour Rd", nil)
	require.NoError(t, err)

	now := time.Now()
	a, err := assignment.NewAssignment(kernel.NewUUID(), snapshot, testDriver(t), dest, "", nil, staffIdentity(t), now)
	require.NoError(t, err)

	path := map[assignment.Status][]assignment.Status{
		assignment.Pending:   nil,
		assignment.InTransit: {assignment.InTransit},
		assignment.Delivered: {assignment.InTransit, assignment.Delivered},
		assignment.Cancelled: {assignment.InTransit, assignment.Cancelled},
	}[status]
	for _, next := range path {
		_, err = a.Transition(next, driverEmail, now)
		require.NoError(t, err)
	}

	return a
}

func errNotFound(id kernel.UUID) error {
	return errs.NewObjectNotFoundError("assignment", id)
}
