package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreatePingCommandIsNotConstructed = errors.New(
	"CreatePingCommand must be created via NewCreatePingCommand constructor",
)

type CreatePingCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreatePingCommand(parcelID kernel.UUID) (CreatePingCommand, error) {
	cmd := CreatePingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setParcelID(parcelID); err != nil {
		return CreatePingCommand{}, err
	}

	return cmd, nil
}

func (c CreatePingCommand) Validate() error {
	return c.guard.Validate(ErrCreatePingCommandIsNotConstructed)
}

func (c CreatePingCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c *CreatePingCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}
