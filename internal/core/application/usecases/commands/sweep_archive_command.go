package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrSweepArchiveCommandIsNotConstructed = errors.New(
	"SweepArchiveCommand must be created via NewSweepArchiveCommand constructor",
)

// SweepArchiveCommand triggers one reconciliation pass over the working set.
//
// Example:
//
//	cmd := NewSweepArchiveCommand()
//	res, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	log.Printf("scanned %d, archived %d, failed %d", res.Scanned, res.Archived, res.Failed)
type SweepArchiveCommand struct {
	guard guard.ConstructorGuard
}

func NewSweepArchiveCommand() SweepArchiveCommand {
	return SweepArchiveCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c *SweepArchiveCommand) Validate() error {
	return c.guard.Validate(ErrSweepArchiveCommandIsNotConstructed)
}
