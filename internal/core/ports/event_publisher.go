package ports

import (
	"context"
	"time"
)

const (
	EventNotificationCreated   = "notification.created"
	EventNotificationResponded = "notification.responded"
	EventNotificationTimedOut  = "notification.timed_out"
	EventRouteAssigned         = "route.assigned"
	EventRouteUpdated          = "route.updated"
	EventRouteDeleted          = "route.deleted"
	EventRouteParcelRemoved    = "route.parcel_removed"
)

// Event is a fact announced after a transaction commits.
type Event struct {
	Name        string         `json:"name"`
	AggregateID string         `json:"aggregateId"`
	OccurredAt  time.Time      `json:"occurredAt"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// EventPublisher announces committed changes to other services. Delivery is
// best effort: a failed publish never undoes the committed change.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
