package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/errs"
)

// CreatePingCommandHandler texts the parcel's customer and opens a pending
// ledger entry with a 15 minute deadline.
type CreatePingCommandHandler struct {
	uowFactory PingUoWFactory
	sender     ports.MessageSender
	clock      ports.Clock
	events     ports.EventPublisher
}

func NewCreatePingCommandHandler(
	uowFactory PingUoWFactory,
	sender ports.MessageSender,
	clock ports.Clock,
	events ports.EventPublisher,
) CreatePingCommandHandler {
	return CreatePingCommandHandler{
		uowFactory: uowFactory,
		sender:     sender,
		clock:      clock,
		events:     events,
	}
}

// Handle returns the id of the new ledger entry.
//
// The SMS goes out before the entry is written. If the write fails the
// customer has been asked but no entry exists; the dispatcher pings again.
func (h CreatePingCommandHandler) Handle(ctx context.Context, cmd CreatePingCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return kernel.UUID{}, err
	}

	c, err := uow.CustomerRepository().Get(ctx, p.CustomerID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if !c.HasContact() {
		return kernel.UUID{}, errs.NewInvalidStateError("customer", "no phone number to ping")
	}

	notifications := uow.NotificationRepository()
	pending, err := notifications.HasPending(ctx, p.ID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if pending {
		return kernel.UUID{}, errs.NewInvalidStateError("notification", "parcel already has a pending ping")
	}

	messageID, err := h.sender.Send(ctx, c.Phone(), ConfirmationMessage(c, p))
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("send confirmation ping: %w", err)
	}

	n, err := notification.NewNotification(kernel.NewUUID(), p.ID(), messageID, h.clock.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = notifications.Add(ctx, n); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	metrics.NotificationsCreated.Inc()
	publish(ctx, h.events, ports.Event{
		Name:        ports.EventNotificationCreated,
		AggregateID: n.ID().String(),
		OccurredAt:  n.CreatedAt(),
		Payload: map[string]any{
			"parcelId": p.ID().String(),
			"deadline": n.Deadline(),
		},
	})

	return n.ID(), nil
}

// ConfirmationMessage is the SMS text asking the customer to confirm they
// can receive the parcel.
func ConfirmationMessage(c *customer.Customer, p *parcel.Parcel) string {
	return fmt.Sprintf(
		"Hello %s, your delivery for parcel #%s is scheduled. Are you available to receive it? "+
			"Reply YES or NO within %d minutes.",
		c.Name(), p.Code(), int(notification.ResponseWindow.Minutes()),
	)
}
