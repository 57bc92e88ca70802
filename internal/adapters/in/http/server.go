package http

import (
	"context"
	"net/http"
	"time"

	"dispatch/internal/adapters/out/eventhub"
	"dispatch/internal/core/application/effects"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case ports of the HTTP adapter. The command and query handlers satisfy them.
type (
	CreateAssignmentHandler interface {
		Handle(ctx context.Context, cmd commands.CreateAssignmentCommand) (commands.CreateAssignmentResult, error)
	}

	TransitionAssignmentHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionAssignmentCommand) (commands.TransitionAssignmentResult, error)
	}

	SweepArchiveHandler interface {
		Handle(ctx context.Context, cmd commands.SweepArchiveCommand) (commands.SweepResult, error)
	}

	GetDriverAssignmentsHandler interface {
		Handle(ctx context.Context, query queries.GetDriverAssignmentsQuery) ([]queries.GetDriverAssignmentsQueryResponse, error)
	}

	CountArchivedAssignmentsHandler interface {
		Handle(ctx context.Context, query queries.CountArchivedAssignmentsQuery) (int64, error)
	}

	// EffectRunner executes the post-commit effects of a command.
	EffectRunner interface {
		Run(ctx context.Context, list []effects.Effect)
	}
)

// Server implements servers.ServerInterface. Command results are returned to
// the client only after their effects have been handed to the runner.
type Server struct {
	// Command handlers
	createHandler     CreateAssignmentHandler
	transitionHandler TransitionAssignmentHandler
	sweepHandler      SweepArchiveHandler

	// Query handlers
	listHandler  GetDriverAssignmentsHandler
	countHandler CountArchivedAssignmentsHandler

	effects   EffectRunner
	hub       *eventhub.Hub
	heartbeat time.Duration
	now       func() time.Time
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(
	createHandler CreateAssignmentHandler,
	transitionHandler TransitionAssignmentHandler,
	sweepHandler SweepArchiveHandler,
	listHandler GetDriverAssignmentsHandler,
	countHandler CountArchivedAssignmentsHandler,
	runner EffectRunner,
	hub *eventhub.Hub,
	heartbeat time.Duration,
) *Server {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &Server{
		createHandler:     createHandler,
		transitionHandler: transitionHandler,
		sweepHandler:      sweepHandler,
		listHandler:       listHandler,
		countHandler:      countHandler,
		effects:           runner,
		hub:               hub,
		heartbeat:         heartbeat,
		now:               time.Now,
	}
}

// CreateAssignment handles POST /api/v1/assignments.
func (s *Server) CreateAssignment(ctx echo.Context) error {
	var body servers.NewAssignment
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body", kindValidation)
	}

	caller := identityFrom(ctx)

	driver, err := assignment.NewDriver(body.Driver.Id, body.Driver.Name, body.Driver.Email)
	if err != nil {
		return handleError(ctx, err)
	}
	productID, err := kernel.UUIDFromBytes(body.ProductId[:])
	if err != nil {
		return handleError(ctx, err)
	}
	var note string
	if body.Note != nil {
		note = *body.Note
	}

	cmd, err := commands.NewCreateAssignmentCommand(
		kernel.NewUUID(),
		productID,
		body.Quantity,
		driver,
		body.Destination,
		note,
		body.EstimatedDelivery,
		caller,
	)
	if err != nil {
		return handleError(ctx, err)
	}

	res, err := s.createHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return handleError(ctx, err)
	}
	s.effects.Run(ctx.Request().Context(), res.Effects)

	return ctx.JSON(http.StatusCreated, servers.AssignmentCreated{Id: res.AssignmentID.Bytes()})
}

// TransitionAssignment handles POST /api/v1/assignments/{id}/transitions.
// The requester is always the caller.
func (s *Server) TransitionAssignment(ctx echo.Context, id openapi_types.UUID) error {
	var body servers.Transition
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body", kindValidation)
	}

	assignmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return handleError(ctx, err)
	}
	status, err := assignment.ParseStatus(string(body.Status))
	if err != nil {
		return handleError(ctx, err)
	}

	cmd, err := commands.NewTransitionAssignmentCommand(assignmentID, status, identityFrom(ctx).Email())
	if err != nil {
		return handleError(ctx, err)
	}

	res, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return handleError(ctx, err)
	}
	s.effects.Run(ctx.Request().Context(), res.Effects)

	return ctx.JSON(http.StatusOK, toAssignment(res.Assignment, s.now()))
}

// ListAssignments handles GET /api/v1/assignments.
func (s *Server) ListAssignments(ctx echo.Context, params servers.ListAssignmentsParams) error {
	email := identityFrom(ctx).Email()
	if params.DriverEmail != nil && *params.DriverEmail != "" {
		email = *params.DriverEmail
	}

	query, err := queries.NewGetDriverAssignmentsQuery(email)
	if err != nil {
		return handleError(ctx, err)
	}

	list, err := s.listHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handleError(ctx, err)
	}

	response := make([]servers.Assignment, len(list))
	for i, a := range list {
		response[i] = fromReadModel(a)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CountArchivedAssignments handles GET /api/v1/archive/count.
func (s *Server) CountArchivedAssignments(ctx echo.Context, params servers.CountArchivedAssignmentsParams) error {
	email := identityFrom(ctx).Email()
	if params.DriverEmail != nil && *params.DriverEmail != "" {
		email = *params.DriverEmail
	}

	query, err := queries.NewCountArchivedAssignmentsQuery(email)
	if err != nil {
		return handleError(ctx, err)
	}

	count, err := s.countHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handleError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.ArchiveCount{Count: count})
}

// SweepArchive handles POST /api/v1/archive/sweep.
func (s *Server) SweepArchive(ctx echo.Context) error {
	res, err := s.sweepHandler.Handle(ctx.Request().Context(), commands.NewSweepArchiveCommand())
	if err != nil {
		return handleError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.SweepResult{
		Scanned:  res.Scanned,
		Archived: res.Archived,
		Failed:   res.Failed,
	})
}

func toAssignment(a *assignment.Assignment, now time.Time) servers.Assignment {
	driver := a.Driver()
	product := a.Product()
	markedBy := a.MarkedBy().Email()

	out := servers.Assignment{
		Id:                a.ID().Bytes(),
		ProductId:         product.ProductID.Bytes(),
		ProductName:       product.Name,
		ProductImageUrl:   optional(product.ImageURL),
		ProductSku:        optional(product.SKU),
		Quantity:          product.Quantity,
		Driver:            servers.Driver{Id: driver.ID, Name: driver.Name, Email: driver.Email},
		Destination:       a.Destination().Address,
		Note:              optional(a.Note()),
		Status:            servers.AssignmentStatus(a.Status().String()),
		AssignedAt:        a.AssignedAt(),
		StartedAt:         a.StartedAt(),
		DeliveredAt:       a.DeliveredAt(),
		EstimatedDelivery: a.EstimatedDelivery(),
		MarkedBy:          &markedBy,
		Overdue:           a.IsOverdue(now),
	}
	if c := a.Destination().Coordinates; c != nil {
		lat, lng := c.Lat(), c.Lng()
		out.Latitude, out.Longitude = &lat, &lng
	}
	return out
}

func fromReadModel(a queries.GetDriverAssignmentsQueryResponse) servers.Assignment {
	markedBy := a.MarkedByEmail
	out := servers.Assignment{
		Id:                a.ID.Bytes(),
		ProductId:         a.ProductID.Bytes(),
		ProductName:       a.ProductName,
		ProductImageUrl:   optional(a.ProductImageURL),
		ProductSku:        optional(a.ProductSKU),
		Quantity:          a.Quantity,
		Driver:            servers.Driver{Id: a.DriverID, Name: a.DriverName, Email: a.DriverEmail},
		Destination:       a.Destination,
		Note:              optional(a.Note),
		Status:            servers.AssignmentStatus(a.Status),
		AssignedAt:        a.AssignedAt,
		StartedAt:         a.StartedAt,
		DeliveredAt:       a.DeliveredAt,
		EstimatedDelivery: a.EstimatedDelivery,
		MarkedBy:          &markedBy,
		Overdue:           a.Overdue,
	}
	if a.Coordinates != nil {
		lat, lng := a.Coordinates.Lat(), a.Coordinates.Lng()
		out.Latitude, out.Longitude = &lat, &lng
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
