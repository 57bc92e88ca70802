package services

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/product"
)

// ShipmentRequest carries everything but the product needed to create an assignment.
type ShipmentRequest struct {
	AssignmentID      kernel.UUID
	Quantity          int
	Driver            assignment.Driver
	Destination       assignment.Destination
	Note              string
	EstimatedDelivery *time.Time
	MarkedBy          kernel.Identity
}

// Shipper couples a stock reservation with the creation of an assignment.
type Shipper struct{}

func NewShipper() Shipper {
	return Shipper{}
}

// Ship reserves req.Quantity units of p and returns the new Pending assignment
// carrying a snapshot of p. When the assignment cannot be built the
// reservation is undone, so p is unchanged on any error.
func (Shipper) Ship(p *product.Product, req ShipmentRequest, now time.Time) (*assignment.Assignment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := assignment.NewProductSnapshot(p.ID(), p.Name(), p.ImageURL(), p.SKU(), req.Quantity)
	if err != nil {
		return nil, err
	}

	if err = p.Reserve(req.Quantity); err != nil {
		return nil, err
	}

	a, err := assignment.NewAssignment(
		req.AssignmentID,
		snapshot,
		req.Driver,
		req.Destination,
		req.Note,
		req.EstimatedDelivery,
		req.MarkedBy,
		now,
	)
	if err != nil {
		_ = p.Return(req.Quantity)
		return nil, err
	}

	return a, nil
}
