package notifyrelay_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"dispatch/internal/adapters/out/eventhub"
	"dispatch/internal/adapters/out/postgres/notifyrelay"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"

	"github.com/stretchr/testify/suite"
)

type RelayIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	logger   *slog.Logger
}

func (suite *RelayIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (suite *RelayIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop(context.Background()))
}

func (suite *RelayIntegrationTestSuite) TestPublishedEventReachesLocalSubscriber() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := eventhub.New(4, metrics.NewUnregistered(), suite.logger)
	defer hub.Close()
	listener := notifyrelay.NewListener(suite.database.DSN, "test_events", hub, suite.logger)

	ready := make(chan struct{})
	stopped := make(chan error, 1)
	go func() { stopped <- listener.Run(ctx, ready) }()
	select {
	case <-ready:
	case <-time.After(10 * time.Second):
		suite.FailNow("listener did not start")
	}

	dana, err := kernel.NewIdentity("drv-1", "dana@example.com")
	suite.Require().NoError(err)
	sub, err := hub.Subscribe(ctx, dana)
	suite.Require().NoError(err)

	publisher := notifyrelay.NewPublisher(suite.database.DB, "test_events")
	suite.Require().NoError(publisher.Publish(ctx, dana, ports.Event{
		Type: ports.EventDeliveryStatusUpdate,
		Data: ports.EventData{AssignmentID: "a-1", ProductName: "Desk", NewStatus: "in-transit"},
	}))

	select {
	case e := <-sub.Events():
		suite.Equal(ports.EventDeliveryStatusUpdate, e.Type)
		suite.Equal("a-1", e.Data.AssignmentID)
		suite.Equal("in-transit", e.Data.NewStatus)
	case <-time.After(5 * time.Second):
		suite.Fail("event not relayed")
	}

	cancel()
	suite.Require().NoError(<-stopped)
}

func (suite *RelayIntegrationTestSuite) TestPublishRejectsOversizedPayload() {
	dana, err := kernel.NewIdentity("drv-1", "dana@example.com")
	suite.Require().NoError(err)

	publisher := notifyrelay.NewPublisher(suite.database.DB, "")
	err = publisher.Publish(context.Background(), dana, ports.Event{
		Type: ports.EventNewAssignment,
		Data: ports.EventData{AssignmentID: "a-1", ProductName: strings.Repeat("x", 9000)},
	})

	suite.Require().ErrorIs(err, notifyrelay.ErrPayloadTooLarge)
}

func TestRelayIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RelayIntegrationTestSuite))
}
