package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRemoveParcelFromRouteCommandIsNotConstructed = errors.New(
	"RemoveParcelFromRouteCommand must be created via NewRemoveParcelFromRouteCommand constructor",
)

type RemoveParcelFromRouteCommand struct { //nolint:recvcheck //using for validation
	routeID  kernel.UUID
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveParcelFromRouteCommand(routeID kernel.UUID, parcelID kernel.UUID) (RemoveParcelFromRouteCommand, error) {
	cmd := RemoveParcelFromRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		routeID.Validate(),
		parcelID.Validate(),
	); err != nil {
		return RemoveParcelFromRouteCommand{}, err
	}
	cmd.routeID = routeID
	cmd.parcelID = parcelID

	return cmd, nil
}

func (c RemoveParcelFromRouteCommand) Validate() error {
	return c.guard.Validate(ErrRemoveParcelFromRouteCommandIsNotConstructed)
}

func (c RemoveParcelFromRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

func (c RemoveParcelFromRouteCommand) ParcelID() kernel.UUID {
	return c.parcelID
}
