package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary spanning every repository.
// Client code manages the lifecycle explicitly: Begin, then Commit, with a
// deferred Rollback that is a no-op after a successful Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Repositories below are bound to the transaction opened by Begin.
	ProductRepository() ProductRepository
	AssignmentRepository() AssignmentRepository
	ArchiveRepository() ArchiveRepository
	DriverSlotRepository() DriverSlotRepository
}
