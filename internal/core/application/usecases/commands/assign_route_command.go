package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignRouteCommandIsNotConstructed = errors.New(
	"AssignRouteCommand must be created via NewAssignRouteCommand constructor",
)

type AssignRouteCommand struct { //nolint:recvcheck //using for validation
	driverID  kernel.UUID
	parcelIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignRouteCommand(driverID kernel.UUID, parcelIDs []kernel.UUID) (AssignRouteCommand, error) {
	cmd := AssignRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setParcelIDs(parcelIDs),
	); err != nil {
		return AssignRouteCommand{}, err
	}

	return cmd, nil
}

func (c AssignRouteCommand) Validate() error {
	return c.guard.Validate(ErrAssignRouteCommandIsNotConstructed)
}

func (c AssignRouteCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c AssignRouteCommand) ParcelIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.parcelIDs))
	copy(out, c.parcelIDs)
	return out
}

func (c *AssignRouteCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *AssignRouteCommand) setParcelIDs(parcelIDs []kernel.UUID) error {
	ids, err := checkParcelIDs(parcelIDs)
	if err != nil {
		return err
	}
	c.parcelIDs = ids
	return nil
}
