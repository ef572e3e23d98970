package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/errs"
)

// ExpiryReport summarizes one sweep.
type ExpiryReport struct {
	// Expired entries were timed out and their parcel skipped and unrouted.
	Expired int
	// Raced entries were answered between the scan and the update.
	Raced int
	// Failed entries were rolled back and stay pending for the next sweep.
	Failed int
	// Failures holds one error per failed entry.
	Failures []error
}

var errLostRace = errors.New("notification was resolved concurrently")

// ExpireNotificationsCommandHandler times out unanswered pings.
//
// Each entry is handled in its own transaction: the entry moves to
// timed-out only if it is still pending, its parcel becomes skipped, and the
// parcel is removed from every route that lists it, with those routes
// re-planned. Any failure rolls the entry back, leaving it pending and
// expired, so the next sweep retries it.
type ExpireNotificationsCommandHandler struct {
	uowFactory ExpiryUoWFactory
	manager    RouteConsistencyManager
	clock      ports.Clock
	events     ports.EventPublisher
}

func NewExpireNotificationsCommandHandler(
	uowFactory ExpiryUoWFactory,
	manager RouteConsistencyManager,
	clock ports.Clock,
	events ports.EventPublisher,
) ExpireNotificationsCommandHandler {
	return ExpireNotificationsCommandHandler{
		uowFactory: uowFactory,
		manager:    manager,
		clock:      clock,
		events:     events,
	}
}

// Handle runs one sweep. The returned error is set only when the scan itself
// fails; per-entry failures are reported in ExpiryReport.
func (h ExpireNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd ExpireNotificationsCommand,
) (ExpiryReport, error) {
	var report ExpiryReport

	if err := cmd.Validate(); err != nil {
		return report, err
	}

	now := h.clock.Now()
	expired, err := h.findExpired(ctx, now, cmd.BatchSize())
	if err != nil {
		return report, err
	}

	for _, n := range expired {
		if ctx.Err() != nil {
			report.Failed++
			report.Failures = append(report.Failures, fmt.Errorf("notification %s: %w", n.ID(), ctx.Err()))
			continue
		}

		routes, expireErr := h.expire(ctx, n)
		switch {
		case errors.Is(expireErr, errLostRace):
			report.Raced++
			metrics.ExpiryTicks.WithLabelValues("raced").Inc()
		case expireErr != nil:
			report.Failed++
			report.Failures = append(report.Failures, fmt.Errorf("notification %s: %w", n.ID(), expireErr))
			metrics.ExpiryTicks.WithLabelValues("failed").Inc()
		default:
			report.Expired++
			metrics.ExpiryTicks.WithLabelValues("expired").Inc()
			metrics.NotificationsResolved.WithLabelValues("timed_out").Inc()
			h.announce(ctx, n, routes)
		}
	}

	return report, nil
}

func (h ExpireNotificationsCommandHandler) findExpired(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*notification.Notification, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.NotificationRepository().FindExpired(ctx, now, limit)
}

// expire settles one entry and returns the ids of the routes it touched.
func (h ExpireNotificationsCommandHandler) expire(ctx context.Context, n *notification.Notification) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := n.TimeOut(); err != nil {
		return nil, errLostRace
	}

	if err := uow.NotificationRepository().ResolvePending(ctx, n); err != nil {
		if errors.Is(err, errs.ErrInvalidState) {
			return nil, errLostRace
		}
		return nil, err
	}

	parcels := uow.ParcelRepository()
	p, err := parcels.Get(ctx, n.ParcelID())
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	if p != nil {
		// Delivered parcels keep their status; everything else is skipped.
		if skipErr := p.Skip(); skipErr != nil && !errors.Is(skipErr, errs.ErrInvalidState) {
			return nil, skipErr
		}
	}

	routes, err := h.manager.RemoveParcelFromAllRoutes(ctx, uow, n.ParcelID(), p)
	if err != nil {
		return nil, err
	}

	if p != nil {
		if err = parcels.UpdateStatus(ctx, p); err != nil {
			return nil, err
		}
		if err = parcels.UpdateRoute(ctx, p); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(routes))
	for _, r := range routes {
		ids = append(ids, r.ID())
	}
	return ids, nil
}

func (h ExpireNotificationsCommandHandler) announce(ctx context.Context, n *notification.Notification, routeIDs []kernel.UUID) {
	touched := make([]string, 0, len(routeIDs))
	for _, id := range routeIDs {
		touched = append(touched, id.String())
	}

	publish(ctx, h.events, ports.Event{
		Name:        ports.EventNotificationTimedOut,
		AggregateID: n.ID().String(),
		OccurredAt:  h.clock.Now(),
		Payload: map[string]any{
			"parcelId": n.ParcelID().String(),
			"routeIds": touched,
		},
	})
}
