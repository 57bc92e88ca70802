// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and a list of post-commit effects handed back to the caller.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	ArchiveRepoFactory interface {
		ArchiveRepository() ports.ArchiveRepository
	}

	DriverSlotRepoFactory interface {
		DriverSlotRepository() ports.DriverSlotRepository
	}

	// ShipmentUoW spans the inventory ledger and the working set, so a stock
	// reservation and the new assignment commit or roll back together.
	ShipmentUoW interface {
		TxManager
		ProductRepoFactory
		AssignmentRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// TransitionUoW spans the working set and the per-driver slots.
	TransitionUoW interface {
		TxManager
		AssignmentRepoFactory
		DriverSlotRepoFactory
	}

	TransitionUoWFactory interface {
		Create() TransitionUoW
	}

	// ArchiveUoW spans the working set and the archive.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   a, err := uow.AssignmentRepository().GetForUpdate(ctx, id)
	//   err = uow.ArchiveRepository().Add(ctx, archived)
	//   err = uow.AssignmentRepository().Delete(ctx, id)
	//
	//   err = uow.Commit(ctx)
	ArchiveUoW interface {
		TxManager
		AssignmentRepoFactory
		ArchiveRepoFactory
	}

	ArchiveUoWFactory interface {
		Create() ArchiveUoW
	}
)
