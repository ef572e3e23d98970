package commands

import (
	"context"

	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
)

// RecordResponseCommandHandler settles a pending ledger entry with the
// customer's answer and moves the parcel accordingly.
type RecordResponseCommandHandler struct {
	uowFactory ResponseUoWFactory
	clock      ports.Clock
	events     ports.EventPublisher
}

func NewRecordResponseCommandHandler(
	uowFactory ResponseUoWFactory,
	clock ports.Clock,
	events ports.EventPublisher,
) RecordResponseCommandHandler {
	return RecordResponseCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		events:     events,
	}
}

// Handle accepts answers after the deadline as long as the entry is still
// pending. An answer for a parcel that was delivered in the meantime settles
// the entry and leaves the parcel alone, as the expiry sweep does. The entry and the parcel are written in one transaction, and the
// entry only moves if it is still pending in storage, so a concurrent expiry
// sweep and this handler never both win.
func (h RecordResponseCommandHandler) Handle(ctx context.Context, cmd RecordResponseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notifications := uow.NotificationRepository()
	parcels := uow.ParcelRepository()

	n, err := notifications.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if err = n.Respond(); err != nil {
		return err
	}

	p, err := parcels.Get(ctx, n.ParcelID())
	if err != nil {
		return err
	}

	// Delivered parcels keep their status; the answer is still recorded.
	moveParcel := !p.Status().IsDelivered()
	if moveParcel {
		if cmd.Answer() == notification.Yes {
			err = p.Confirm()
		} else {
			err = p.Skip()
		}
		if err != nil {
			return err
		}
	}

	if err = notifications.ResolvePending(ctx, n); err != nil {
		return err
	}

	if moveParcel {
		if err = parcels.UpdateStatus(ctx, p); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.NotificationsResolved.WithLabelValues(cmd.Answer().String()).Inc()
	publish(ctx, h.events, ports.Event{
		Name:        ports.EventNotificationResponded,
		AggregateID: n.ID().String(),
		OccurredAt:  h.clock.Now(),
		Payload: map[string]any{
			"parcelId":     p.ID().String(),
			"answer":       cmd.Answer().String(),
			"parcelStatus": p.Status().String(),
		},
	})

	return nil
}
