package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDeleteRouteCommandIsNotConstructed = errors.New(
	"DeleteRouteCommand must be created via NewDeleteRouteCommand constructor",
)

type DeleteRouteCommand struct {
	routeID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteRouteCommand(routeID kernel.UUID) (DeleteRouteCommand, error) {
	if err := routeID.Validate(); err != nil {
		return DeleteRouteCommand{}, err
	}

	return DeleteRouteCommand{
		routeID: routeID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteRouteCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRouteCommandIsNotConstructed)
}

func (c DeleteRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}
