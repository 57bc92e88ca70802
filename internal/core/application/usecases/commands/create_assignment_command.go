package commands

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrQuantityMustBePositive = errors.New("quantity must be greater than 0")

	ErrCreateAssignmentCommandIsNotConstructed = errors.New(
		"CreateAssignmentCommand must be created via NewCreateAssignmentCommand constructor",
	)
)

// CreateAssignmentCommand requests shipping quantity units of a product to a
// driver. markedBy is the staff identity that will be notified of status changes.
//
// Example:
//
//	driver, _ := assignment.NewDriver("drv-7", "Dana", "dana@example.com")
//	cmd, err := NewCreateAssignmentCommand(
//	    kernel.NewUUID(), productID, 2, driver, "12 Harbour Rd", "fragile", nil, staff,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid shipment: %w", err)
//	}
//
//	res, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, product.ErrInsufficientStock) {
//	    // nothing was reserved and no assignment exists
//	}
//	runner.Run(ctx, res.Effects)
type CreateAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID      kernel.UUID
	productID         kernel.UUID
	quantity          int
	driver            assignment.Driver
	destination       string
	note              string
	estimatedDelivery *time.Time
	markedBy          kernel.Identity

	guard guard.ConstructorGuard
}

func NewCreateAssignmentCommand(
	assignmentID kernel.UUID,
	productID kernel.UUID,
	quantity int,
	driver assignment.Driver,
	destination string,
	note string,
	estimatedDelivery *time.Time,
	markedBy kernel.Identity,
) (CreateAssignmentCommand, error) {
	cmd := CreateAssignmentCommand{
		note:              note,
		estimatedDelivery: estimatedDelivery,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAssignmentID(assignmentID),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
		cmd.setDriver(driver),
		cmd.setDestination(destination),
		cmd.setMarkedBy(markedBy),
	); err != nil {
		return CreateAssignmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAssignmentCommandIsNotConstructed)
}

func (c CreateAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

func (c CreateAssignmentCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c CreateAssignmentCommand) Quantity() int {
	return c.quantity
}

func (c CreateAssignmentCommand) Driver() assignment.Driver {
	return c.driver
}

func (c CreateAssignmentCommand) Destination() string {
	return c.destination
}

func (c CreateAssignmentCommand) Note() string {
	return c.note
}

func (c CreateAssignmentCommand) EstimatedDelivery() *time.Time {
	return c.estimatedDelivery
}

func (c CreateAssignmentCommand) MarkedBy() kernel.Identity {
	return c.markedBy
}

func (c *CreateAssignmentCommand) setAssignmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.assignmentID = id
	return nil
}

func (c *CreateAssignmentCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.productID = id
	return nil
}

func (c *CreateAssignmentCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", ErrQuantityMustBePositive)
	}
	c.quantity = quantity
	return nil
}

func (c *CreateAssignmentCommand) setDriver(driver assignment.Driver) error {
	if driver.ID == "" || driver.Email == "" {
		return errs.NewValueIsRequiredError("driver")
	}
	c.driver = driver
	return nil
}

func (c *CreateAssignmentCommand) setDestination(destination string) error {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	c.destination = destination
	return nil
}

func (c *CreateAssignmentCommand) setMarkedBy(markedBy kernel.Identity) error {
	if markedBy.IsZero() {
		return errs.NewValueIsRequiredError("markedBy")
	}
	c.markedBy = markedBy
	return nil
}
