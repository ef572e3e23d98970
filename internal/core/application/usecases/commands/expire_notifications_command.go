package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const DefaultExpiryBatchSize = 100

var ErrExpireNotificationsCommandIsNotConstructed = errors.New(
	"ExpireNotificationsCommand must be created via NewExpireNotificationsCommand constructor",
)

// ExpireNotificationsCommand asks for one sweep over at most BatchSize
// expired ledger entries.
type ExpireNotificationsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewExpireNotificationsCommand(batchSize int) (ExpireNotificationsCommand, error) {
	if batchSize <= 0 {
		return ExpireNotificationsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batchSize", fmt.Errorf("%d is not greater than 0", batchSize))
	}

	return ExpireNotificationsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrExpireNotificationsCommandIsNotConstructed)
}

func (c ExpireNotificationsCommand) BatchSize() int {
	return c.batchSize
}
