package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReplaceRouteParcelsCommandIsNotConstructed = errors.New(
	"ReplaceRouteParcelsCommand must be created via NewReplaceRouteParcelsCommand constructor",
)

type ReplaceRouteParcelsCommand struct { //nolint:recvcheck //using for validation
	routeID   kernel.UUID
	parcelIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewReplaceRouteParcelsCommand(routeID kernel.UUID, parcelIDs []kernel.UUID) (ReplaceRouteParcelsCommand, error) {
	cmd := ReplaceRouteParcelsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRouteID(routeID),
		cmd.setParcelIDs(parcelIDs),
	); err != nil {
		return ReplaceRouteParcelsCommand{}, err
	}

	return cmd, nil
}

func (c ReplaceRouteParcelsCommand) Validate() error {
	return c.guard.Validate(ErrReplaceRouteParcelsCommandIsNotConstructed)
}

func (c ReplaceRouteParcelsCommand) RouteID() kernel.UUID {
	return c.routeID
}

func (c ReplaceRouteParcelsCommand) ParcelIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.parcelIDs))
	copy(out, c.parcelIDs)
	return out
}

func (c *ReplaceRouteParcelsCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	c.routeID = routeID
	return nil
}

func (c *ReplaceRouteParcelsCommand) setParcelIDs(parcelIDs []kernel.UUID) error {
	ids, err := checkParcelIDs(parcelIDs)
	if err != nil {
		return err
	}
	c.parcelIDs = ids
	return nil
}
