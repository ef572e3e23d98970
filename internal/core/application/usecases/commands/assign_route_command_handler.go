package commands

import (
	"context"

	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
)

type AssignRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	manager    RouteConsistencyManager
	clock      ports.Clock
	events     ports.EventPublisher
}

func NewAssignRouteCommandHandler(
	uowFactory RouteUoWFactory,
	manager RouteConsistencyManager,
	clock ports.Clock,
	events ports.EventPublisher,
) AssignRouteCommandHandler {
	return AssignRouteCommandHandler{
		uowFactory: uowFactory,
		manager:    manager,
		clock:      clock,
		events:     events,
	}
}

// Handle checks the driver, plans the parcels and stores the new route.
func (h AssignRouteCommandHandler) Handle(ctx context.Context, cmd AssignRouteCommand) (*route.Route, error) {
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

	if _, err := uow.DriverRepository().Get(ctx, cmd.DriverID()); err != nil {
		return nil, err
	}

	r, err := h.manager.AssignRoute(ctx, uow, cmd.DriverID(), cmd.ParcelIDs())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.events, routeEvent(ports.EventRouteAssigned, r, h.clock))
	return r, nil
}

func routeEvent(name string, r *route.Route, clock ports.Clock) ports.Event {
	parcelIDs := make([]string, 0, len(r.ParcelIDs()))
	for _, id := range r.ParcelIDs() {
		parcelIDs = append(parcelIDs, id.String())
	}

	payload := map[string]any{
		"parcelIds":      parcelIDs,
		"distanceMeters": r.Plan().DistanceMeters(),
	}
	if driverID := r.DriverID(); driverID != nil {
		payload["driverId"] = driverID.String()
	}

	return ports.Event{
		Name:        name,
		AggregateID: r.ID().String(),
		OccurredAt:  clock.Now(),
		Payload:     payload,
	}
}
