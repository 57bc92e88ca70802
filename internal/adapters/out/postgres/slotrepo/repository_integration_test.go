package slotrepo_test

import (
	"context"
	"testing"

	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/adapters/out/postgres/slotrepo"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
)

type DriverSlotRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *slotrepo.GormDriverSlotRepository
}

func (suite *DriverSlotRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repository = slotrepo.NewGormDriverSlotRepository(database.DB)
}

func (suite *DriverSlotRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())
}

func (suite *DriverSlotRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop(context.Background()))
}

func (suite *DriverSlotRepositoryIntegrationTestSuite) slotCount() int64 {
	var n int64
	suite.Require().NoError(suite.database.DB.Model(&slotrepo.DriverSlotDTO{}).Count(&n).Error)
	return n
}

func (suite *DriverSlotRepositoryIntegrationTestSuite) TestClaim_SecondClaimForSameDriverFails() {
	ctx := context.Background()
	a1, a2 := kernel.NewUUID(), kernel.NewUUID()

	suite.Require().NoError(suite.repository.Claim(ctx, "d@example.com", a1))
	err := suite.repository.Claim(ctx, "d@example.com", a2)

	suite.Require().ErrorIs(err, assignment.ErrActiveDeliveryExists)
	suite.Equal(int64(1), suite.slotCount())
}

func (suite *DriverSlotRepositoryIntegrationTestSuite) TestClaim_DifferentDrivers() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Claim(ctx, "a@example.com", kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Claim(ctx, "b@example.com", kernel.NewUUID()))

	suite.Equal(int64(2), suite.slotCount())
}

func (suite *DriverSlotRepositoryIntegrationTestSuite) TestRelease_ThenClaimAgain() {
	ctx := context.Background()
	a1, a2 := kernel.NewUUID(), kernel.NewUUID()

	suite.Require().NoError(suite.repository.Claim(ctx, "d@example.com", a1))
	suite.Require().NoError(suite.repository.Release(ctx, "d@example.com", a1))
	suite.Require().NoError(suite.repository.Claim(ctx, "d@example.com", a2))
}

func (suite *DriverSlotRepositoryIntegrationTestSuite) TestRelease_OnlyByHolder() {
	ctx := context.Background()
	holder := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Claim(ctx, "d@example.com", holder))
	suite.Require().NoError(suite.repository.Release(ctx, "d@example.com", kernel.NewUUID()))

	suite.Equal(int64(1), suite.slotCount())
}

func (suite *DriverSlotRepositoryIntegrationTestSuite) TestClaim_RolledBackClaimFreesSlot() {
	ctx := context.Background()

	tx := suite.database.DB.Begin()
	suite.Require().NoError(slotrepo.NewGormDriverSlotRepository(tx).Claim(ctx, "d@example.com", kernel.NewUUID()))
	suite.Require().NoError(tx.Rollback().Error)

	suite.Require().NoError(suite.repository.Claim(ctx, "d@example.com", kernel.NewUUID()))
}

func TestDriverSlotRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DriverSlotRepositoryIntegrationTestSuite))
}
