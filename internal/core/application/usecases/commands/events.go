package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// publish announces a committed change. Publishers record their own
// failures; the change is already committed, so the error is not returned.
func publish(ctx context.Context, publisher ports.EventPublisher, event ports.Event) {
	if publisher == nil {
		return
	}
	_ = publisher.Publish(ctx, event)
}
