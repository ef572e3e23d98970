package commands

import (
	"context"

	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
)

type RemoveParcelFromRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	manager    RouteConsistencyManager
	clock      ports.Clock
	events     ports.EventPublisher
}

func NewRemoveParcelFromRouteCommandHandler(
	uowFactory RouteUoWFactory,
	manager RouteConsistencyManager,
	clock ports.Clock,
	events ports.EventPublisher,
) RemoveParcelFromRouteCommandHandler {
	return RemoveParcelFromRouteCommandHandler{
		uowFactory: uowFactory,
		manager:    manager,
		clock:      clock,
		events:     events,
	}
}

func (h RemoveParcelFromRouteCommandHandler) Handle(
	ctx context.Context,
	cmd RemoveParcelFromRouteCommand,
) (*route.Route, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := h.manager.RemoveParcelFromRoute(ctx, uow, cmd.RouteID(), cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	event := routeEvent(ports.EventRouteParcelRemoved, r, h.clock)
	event.Payload["removedParcelId"] = cmd.ParcelID().String()
	publish(ctx, h.events, event)

	return r, nil
}
