package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/application/effects"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
)

// CreateAssignmentResult carries the new assignment ID and the effects the
// caller must run once it has the result in hand.
type CreateAssignmentResult struct {
	AssignmentID kernel.UUID
	Effects      []effects.Effect
}

// CreateAssignmentCommandHandler reserves stock and inserts the assignment in
// one unit of work. Either both persist or neither does.
type CreateAssignmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	geocoder   ports.Geocoder
	shipper    services.Shipper
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

// NewCreateAssignmentCommandHandler creates the handler. geocoder may be nil,
// in which case destinations are stored without coordinates.
func NewCreateAssignmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	geocoder ports.Geocoder,
	m *metrics.Metrics,
	logger *slog.Logger,
) CreateAssignmentCommandHandler {
	return CreateAssignmentCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		shipper:    services.NewShipper(),
		metrics:    m,
		logger:     logger.With("component", "create_assignment"),
		now:        time.Now,
	}
}

// Handle geocodes the destination outside the transaction, then locks the
// product row, reserves stock, writes the product back and inserts the
// assignment. Returns errs.ErrObjectNotFound for an unknown product and
// product.ErrInsufficientStock when quantity exceeds stock.
func (h CreateAssignmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateAssignmentCommand,
) (CreateAssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateAssignmentResult{}, err
	}

	destination, err := assignment.NewDestination(cmd.Destination(), h.geocode(ctx, cmd.Destination()))
	if err != nil {
		return CreateAssignmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateAssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	assignmentRepo := uow.AssignmentRepository()

	p, err := productRepo.GetForUpdate(ctx, cmd.ProductID())
	if err != nil {
		return CreateAssignmentResult{}, err
	}

	a, err := h.shipper.Ship(p, services.ShipmentRequest{
		AssignmentID:      cmd.AssignmentID(),
		Quantity:          cmd.Quantity(),
		Driver:            cmd.Driver(),
		Destination:       destination,
		Note:              cmd.Note(),
		EstimatedDelivery: cmd.EstimatedDelivery(),
		MarkedBy:          cmd.MarkedBy(),
	}, h.now())
	if err != nil {
		return CreateAssignmentResult{}, err
	}

	if err = productRepo.Update(ctx, p); err != nil {
		return CreateAssignmentResult{}, err
	}

	if err = assignmentRepo.Add(ctx, a); err != nil {
		return CreateAssignmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateAssignmentResult{}, err
	}

	h.metrics.AssignmentsCreated.Inc()
	h.logger.InfoContext(ctx, "assignment created",
		"assignment_id", a.ID().String(),
		"product_id", p.ID().String(),
		"quantity", cmd.Quantity(),
		"driver", a.Driver().Email,
		"stock_left", p.Stock(),
	)

	return CreateAssignmentResult{
		AssignmentID: a.ID(),
		Effects:      newAssignmentEffects(a),
	}, nil
}

// geocode never fails the shipment: an unresolved address just has no coordinates.
func (h CreateAssignmentCommandHandler) geocode(ctx context.Context, address string) *kernel.Coordinates {
	if h.geocoder == nil {
		return nil
	}

	c, err := h.geocoder.Geocode(ctx, address)
	switch {
	case errors.Is(err, ports.ErrAddressNotFound):
		h.logger.InfoContext(ctx, "destination not geocoded", "destination", address)
		return nil
	case err != nil:
		h.logger.WarnContext(ctx, "geocoder failed", "destination", address, "error", err)
		return nil
	}

	return &c
}

func newAssignmentEffects(a *assignment.Assignment) []effects.Effect {
	driver := a.Driver()
	return []effects.Effect{
		effects.PublishEvent(driver.Identity(), ports.Event{
			Type: ports.EventNewAssignment,
			Data: ports.EventData{
				AssignmentID: a.ID().String(),
				ProductName:  a.Product().Name,
				Destination:  a.Destination().Address,
				NewStatus:    a.Status().String(),
			},
		}),
		effects.Push(ports.PushMessage{
			DriverEmail:  driver.Email,
			AssignmentID: a.ID().String(),
			Title:        "New delivery assigned",
			Body:         a.Product().Name + " to " + a.Destination().Address,
		}),
	}
}
