package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetNotificationQueryIsNotConstructed = errors.New(
	"GetNotificationQuery must be created via NewGetNotificationQuery constructor",
)

type GetNotificationQuery struct {
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetNotificationQuery(notificationID kernel.UUID) (GetNotificationQuery, error) {
	if err := notificationID.Validate(); err != nil {
		return GetNotificationQuery{}, err
	}
	return GetNotificationQuery{notificationID: notificationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetNotificationQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationQueryIsNotConstructed)
}

func (q GetNotificationQuery) NotificationID() kernel.UUID {
	return q.notificationID
}

// NotificationResponse is the read model of a ledger entry.
type NotificationResponse struct {
	ID        kernel.UUID
	ParcelID  kernel.UUID
	Status    string
	CreatedAt time.Time
	Deadline  time.Time
}
