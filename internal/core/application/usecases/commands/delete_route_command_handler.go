package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

type DeleteRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	manager    RouteConsistencyManager
	clock      ports.Clock
	events     ports.EventPublisher
}

func NewDeleteRouteCommandHandler(
	uowFactory RouteUoWFactory,
	manager RouteConsistencyManager,
	clock ports.Clock,
	events ports.EventPublisher,
) DeleteRouteCommandHandler {
	return DeleteRouteCommandHandler{
		uowFactory: uowFactory,
		manager:    manager,
		clock:      clock,
		events:     events,
	}
}

func (h DeleteRouteCommandHandler) Handle(ctx context.Context, cmd DeleteRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := h.manager.DeleteRoute(ctx, uow, cmd.RouteID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	publish(ctx, h.events, ports.Event{
		Name:        ports.EventRouteDeleted,
		AggregateID: cmd.RouteID().String(),
		OccurredAt:  h.clock.Now(),
	})
	return nil
}
