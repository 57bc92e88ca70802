package cmd

import (
	"context"
	"log/slog"

	"dispatch/api"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/eventhub"
	"dispatch/internal/adapters/out/geocoder"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/notifyrelay"
	"dispatch/internal/adapters/out/push"
	"dispatch/internal/core/application/effects"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	metrics    *metrics.Metrics
	logger     *slog.Logger

	policy    services.ArchivePolicy
	hub       *eventhub.Hub
	publisher ports.EventPublisher
	geocoder  ports.Geocoder
	runner    *effects.Runner
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, m *metrics.Metrics, logger *slog.Logger) CompositionRoot {
	hub := eventhub.New(configs.EventBufferSize, m, logger)

	// With the postgres relay every instance publishes through NOTIFY and its
	// listener feeds the local hub, including for its own events.
	var publisher ports.EventPublisher = hub
	if configs.EventsRelay == RelayPostgres {
		publisher = notifyrelay.NewPublisher(gormDB, configs.EventsChannel)
	}

	var geo ports.Geocoder = geocoder.NopGeocoder{}
	if configs.GeocoderURL != "" {
		geo = geocoder.NewNominatimGeocoder(configs.GeocoderURL, configs.GeocoderTimeout)
	}

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    m,
		logger:     logger,
		policy:     services.NewArchivePolicy(configs.ArchiveCancelled),
		hub:        hub,
		publisher:  publisher,
		geocoder:   geo,
		runner:     effects.NewRunner(publisher, push.NewLogNotifier(logger), m, logger),
	}
}

func (c *CompositionRoot) CreateCreateAssignmentCommandHandler() commands.CreateAssignmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateAssignmentCommandHandler(f, c.geocoder, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateArchiveAssignmentCommandHandler() commands.ArchiveAssignmentCommandHandler {
	return commands.NewArchiveAssignmentCommandHandler(c.archiveUoWFactory(), c.metrics, c.logger)
}

func (c *CompositionRoot) CreateTransitionAssignmentCommandHandler() commands.TransitionAssignmentCommandHandler {
	var f commands.TransitionUoWFactory = FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionAssignmentCommandHandler(
		f, c.CreateArchiveAssignmentCommandHandler(), c.policy, c.metrics, c.logger,
	)
}

func (c *CompositionRoot) CreateSweepArchiveCommandHandler() commands.SweepArchiveCommandHandler {
	return commands.NewSweepArchiveCommandHandler(
		c.archiveUoWFactory(), c.CreateArchiveAssignmentCommandHandler(), c.policy, c.metrics, c.logger,
	)
}

func (c *CompositionRoot) CreateGetDriverAssignmentsQueryHandler() queries.GetDriverAssignmentsQueryHandler {
	return queries.NewGetDriverAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountArchivedAssignmentsQueryHandler() queries.CountArchivedAssignmentsQueryHandler {
	return queries.NewCountArchivedAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSweepArchiveCommandHandler(), c.configs.SweepSchedule, c.logger)
}

// CreateRouter wires the HTTP surface. gatherer backs /metrics.
func (c *CompositionRoot) CreateRouter(gatherer prometheus.Gatherer) (*echo.Echo, error) {
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(
		c.CreateCreateAssignmentCommandHandler(),
		c.CreateTransitionAssignmentCommandHandler(),
		c.CreateSweepArchiveCommandHandler(),
		c.CreateGetDriverAssignmentsQueryHandler(),
		c.CreateCountArchivedAssignmentsQueryHandler(),
		c.runner,
		c.hub,
		c.configs.SSEHeartbeat,
	)
	return httpin.NewRouter(server, doc, c.metrics, gatherer)
}

// RunRelay blocks until ctx is done when the postgres relay is enabled and
// returns immediately otherwise.
func (c *CompositionRoot) RunRelay(ctx context.Context) error {
	if c.configs.EventsRelay != RelayPostgres {
		return nil
	}
	listener := notifyrelay.NewListener(c.configs.DSN(), c.configs.EventsChannel, c.hub, c.logger)
	return listener.Run(ctx, nil)
}

// CloseEventStreams ends every open subscription so SSE handlers return.
func (c *CompositionRoot) CloseEventStreams() {
	c.hub.Close()
}

// Shutdown closes the event streams and waits for in-flight push effects.
func (c *CompositionRoot) Shutdown() {
	c.CloseEventStreams()
	c.runner.Wait()
}

func (c *CompositionRoot) archiveUoWFactory() commands.ArchiveUoWFactory {
	return FuncArchiveUoWFactory(func() commands.ArchiveUoW {
		return c.uowFactory.Create()
	})
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncTransitionUoWFactory func() commands.TransitionUoW

func (f FuncTransitionUoWFactory) Create() commands.TransitionUoW {
	return f()
}

type FuncArchiveUoWFactory func() commands.ArchiveUoW

func (f FuncArchiveUoWFactory) Create() commands.ArchiveUoW {
	return f()
}
