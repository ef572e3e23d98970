package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, optimizer ports.RouteOptimizer) commands.RouteConsistencyManager {
	t.Helper()
	depot, err := kernel.NewLocation(79.0, 21.0)
	require.NoError(t, err)
	m, err := commands.NewRouteConsistencyManager(optimizer, depot)
	require.NoError(t, err)
	return m
}

func TestNewRouteConsistencyManager(t *testing.T) {
	depot, _ := kernel.NewLocation(79.0, 21.0)

	_, err := commands.NewRouteConsistencyManager(nil, depot)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewRouteConsistencyManager(new(MockRouteOptimizer), kernel.Location{})
	require.Error(t, err)
}

func TestAssignRouteCommandHandler_Handle_DriverNotFound(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	cmd, err := commands.NewAssignRouteCommand(driverID, []kernel.UUID{kernel.NewUUID()})
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	optimizer := new(MockRouteOptimizer)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo).Once()
	driverRepo.On("Get", ctx, driverID).Return(nil, errs.NewObjectNotFoundError("driver", driverID.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("create").Return(uow).Once()

	handler := commands.NewAssignRouteCommandHandler(routeFactory{factory}, newManager(t, optimizer), fixedClock{pingNow}, nil)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	optimizer.AssertNotCalled(t, "Optimize", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignRouteCommandHandler_Handle_OptimizerFailurePersistsNothing(t *testing.T) {
	ctx := t.Context()
	p, _ := pingFixtures(t, "+1")
	d := kernel.NewUUID()
	cmd, err := commands.NewAssignRouteCommand(d, []kernel.UUID{p.ID()})
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	parcelRepo := new(MockParcelRepository)
	routeRepo := new(MockRouteRepository)
	optimizer := new(MockRouteOptimizer)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo).Once()
	driverRepo.On("Get", ctx, d).Return(nil, nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo)
	uow.On("RouteRepository").Return(routeRepo)
	parcelRepo.On("GetMany", ctx, []kernel.UUID{p.ID()}).Return([]*parcel.Parcel{p}, nil).Once()
	optimizer.On("Optimize", ctx, mock.Anything, mock.Anything).
		Return(route.Plan{}, ports.ErrOptimizationFailed).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("create").Return(uow).Once()

	handler := commands.NewAssignRouteCommandHandler(routeFactory{factory}, newManager(t, optimizer), fixedClock{pingNow}, nil)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrOptimizationFailed)
	routeRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	parcelRepo.AssertNotCalled(t, "UpdateRoute", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Nil(t, p.RouteID())
}

func TestAssignRouteCommandHandler_Handle_PublishesAfterCommit(t *testing.T) {
	ctx := t.Context()
	p, _ := pingFixtures(t, "+1")
	d := kernel.NewUUID()
	cmd, err := commands.NewAssignRouteCommand(d, []kernel.UUID{p.ID()})
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	parcelRepo := new(MockParcelRepository)
	routeRepo := new(MockRouteRepository)
	optimizer := &stubOptimizer{}
	events := new(MockEventPublisher)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo).Once()
	driverRepo.On("Get", ctx, d).Return(nil, nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo)
	uow.On("RouteRepository").Return(routeRepo)
	parcelRepo.On("GetMany", ctx, []kernel.UUID{p.ID()}).Return([]*parcel.Parcel{p}, nil).Once()
	routeRepo.On("Add", ctx, mock.AnythingOfType("*route.Route")).Return(nil).Once()
	parcelRepo.On("UpdateRoute", ctx, p).Return(nil).Once()
	commit := uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	events.On("Publish", ctx, mock.MatchedBy(func(e ports.Event) bool {
		return e.Name == ports.EventRouteAssigned && e.Payload["driverId"] == d.String()
	})).Return(assert.AnError).Once().NotBefore(commit)

	factory := new(MockUoWFactory)
	factory.On("create").Return(uow).Once()

	handler := commands.NewAssignRouteCommandHandler(routeFactory{factory}, newManager(t, optimizer), fixedClock{pingNow}, events)
	r, err := handler.Handle(ctx, cmd)

	require.NoError(t, err, "a failed publish does not fail the command")
	assert.True(t, p.IsOnRoute(r.ID()))
	events.AssertExpectations(t)
}
