package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/pkg/guard"
)

var ErrRecordResponseCommandIsNotConstructed = errors.New(
	"RecordResponseCommand must be created via NewRecordResponseCommand constructor",
)

type RecordResponseCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	answer         notification.Answer

	guard guard.ConstructorGuard
}

// NewRecordResponseCommand accepts "yes" or "no" in any letter case.
func NewRecordResponseCommand(notificationID kernel.UUID, response string) (RecordResponseCommand, error) {
	cmd := RecordResponseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setNotificationID(notificationID),
		cmd.setAnswer(response),
	); err != nil {
		return RecordResponseCommand{}, err
	}

	return cmd, nil
}

func (c RecordResponseCommand) Validate() error {
	return c.guard.Validate(ErrRecordResponseCommandIsNotConstructed)
}

func (c RecordResponseCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

func (c RecordResponseCommand) Answer() notification.Answer {
	return c.answer
}

func (c *RecordResponseCommand) setNotificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.notificationID = id
	return nil
}

func (c *RecordResponseCommand) setAnswer(response string) error {
	answer, err := notification.ParseAnswer(response)
	if err != nil {
		return err
	}
	c.answer = answer
	return nil
}
