package commands

import (
	"context"

	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
)

type ReplaceRouteParcelsCommandHandler struct {
	uowFactory RouteUoWFactory
	manager    RouteConsistencyManager
	clock      ports.Clock
	events     ports.EventPublisher
}

func NewReplaceRouteParcelsCommandHandler(
	uowFactory RouteUoWFactory,
	manager RouteConsistencyManager,
	clock ports.Clock,
	events ports.EventPublisher,
) ReplaceRouteParcelsCommandHandler {
	return ReplaceRouteParcelsCommandHandler{
		uowFactory: uowFactory,
		manager:    manager,
		clock:      clock,
		events:     events,
	}
}

func (h ReplaceRouteParcelsCommandHandler) Handle(
	ctx context.Context,
	cmd ReplaceRouteParcelsCommand,
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

	r, err := h.manager.ReplaceRouteParcels(ctx, uow, cmd.RouteID(), cmd.ParcelIDs())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.events, routeEvent(ports.EventRouteUpdated, r, h.clock))
	return r, nil
}
