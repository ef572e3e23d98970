package parcelrepo_test

import (
	"context"
	"testing"

	"dispatch/internal/adapters/out/postgres/parcelrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type ParcelRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *parcelrepo.GormParcelRepository
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.repository = parcelrepo.NewGormParcelRepository(suite.pg.DB)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Stop(context.Background()))
	}
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdateRoute_WritesOnlyTheReference() {
	ctx := context.Background()
	p := suite.add()
	routeID := kernel.NewUUID()

	suite.Require().NoError(p.AttachToRoute(routeID))
	suite.Require().NoError(p.Confirm())
	suite.Require().NoError(suite.repository.UpdateRoute(ctx, p))

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.True(got.IsOnRoute(routeID))
	suite.Equal(parcel.Pending, got.Status(), "status is left to UpdateStatus")

	suite.True(got.DetachFromRoute(routeID))
	suite.Require().NoError(suite.repository.UpdateRoute(ctx, got))

	cleared, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Nil(cleared.RouteID(), "a cleared reference is written as NULL")
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdateStatus_WritesOnlyTheStatus() {
	ctx := context.Background()
	p := suite.add()

	suite.Require().NoError(p.AttachToRoute(kernel.NewUUID()))
	suite.Require().NoError(p.Skip())
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, p))

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.Skipped, got.Status())
	suite.Nil(got.RouteID(), "the route reference is left to UpdateRoute")
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetMany_KeepsOrderAndReportsMissing() {
	ctx := context.Background()
	a, b, c := suite.add(), suite.add(), suite.add()

	got, err := suite.repository.GetMany(ctx, []kernel.UUID{c.ID(), a.ID(), b.ID()})
	suite.Require().NoError(err)
	suite.Require().Len(got, 3)
	suite.Equal(c.ID(), got[0].ID())
	suite.Equal(a.ID(), got[1].ID())
	suite.Equal(b.ID(), got[2].ID())

	_, err = suite.repository.GetMany(ctx, []kernel.UUID{a.ID(), kernel.NewUUID()})
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGet_MissingCoordinateLoadsAsUnplannable() {
	ctx := context.Background()
	p := suite.add()
	suite.Require().NoError(suite.pg.DB.Exec(
		"UPDATE parcels SET location_lng = NULL WHERE id = ?", p.ID().String()).Error)

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)

	_, err = got.PlannableLocation()
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestFindByRoute() {
	ctx := context.Background()
	routeID := kernel.NewUUID()
	on1, on2, off := suite.add(), suite.add(), suite.add()
	for _, p := range []*parcel.Parcel{on1, on2} {
		suite.Require().NoError(p.AttachToRoute(routeID))
		suite.Require().NoError(suite.repository.UpdateRoute(ctx, p))
	}

	got, err := suite.repository.FindByRoute(ctx, routeID)
	suite.Require().NoError(err)
	suite.Len(got, 2)
	for _, p := range got {
		suite.NotEqual(off.ID(), p.ID())
	}
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_Missing() {
	loc, _ := kernel.NewLocation(79, 21)
	p, err := parcel.NewParcel(kernel.NewUUID(), "PCL-404", kernel.NewUUID(), loc, 1)
	suite.Require().NoError(err)

	suite.Require().ErrorIs(suite.repository.UpdateRoute(context.Background(), p), errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.UpdateStatus(context.Background(), p), errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) add() *parcel.Parcel {
	loc, err := kernel.NewLocation(79.08, 21.14)
	suite.Require().NoError(err)
	p, err := parcel.NewParcel(kernel.NewUUID(), "PCL-7", kernel.NewUUID(), loc, 2)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), p))
	return p
}

func TestParcelRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(ParcelRepositoryIntegrationTestSuite))
}
