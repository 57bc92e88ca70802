package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository is the persistence contract of the working set.
type AssignmentRepository interface {
	// Add inserts a new assignment.
	Add(ctx context.Context, a *assignment.Assignment) error

	// Get returns the assignment or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	// Two transitions of the same assignment therefore never interleave.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// Update persists status, timestamps and the notification log.
	Update(ctx context.Context, a *assignment.Assignment) error

	// Delete removes the assignment from the working set. Deleting a missing
	// record is not an error.
	Delete(ctx context.Context, id kernel.UUID) error

	// ListIDsByStatus returns the IDs of every working-set record in one of statuses.
	ListIDsByStatus(ctx context.Context, statuses ...assignment.Status) ([]kernel.UUID, error)
}

// ArchiveRepository is the append-only archive store.
type ArchiveRepository interface {
	// Add inserts an archive entry. OriginalID is unique.
	Add(ctx context.Context, a *assignment.ArchivedAssignment) error

	// ExistsByOriginalID reports whether the working-set record was already copied.
	ExistsByOriginalID(ctx context.Context, originalID kernel.UUID) (bool, error)
}

// DriverSlotRepository records which driver currently has a delivery in transit.
// A slot is the per-driver "has active delivery" flag: it is claimed in the
// transaction that starts a delivery and released in the one that ends it.
type DriverSlotRepository interface {
	// Claim takes the driver's slot for assignmentID or fails with
	// assignment.ErrActiveDeliveryExists when another assignment holds it.
	Claim(ctx context.Context, driverEmail string, assignmentID kernel.UUID) error

	// Release frees the slot if assignmentID holds it.
	Release(ctx context.Context, driverEmail string, assignmentID kernel.UUID) error
}
