package ports

import (
	"context"

	"freightmatch/internal/core/domain/events"
)

// EventPublisher defines the outbound contract for lifecycle events.
//
// Publishing is fire-and-forget: implementations log and count delivery
// failures but never return them, so a broker outage cannot fail the
// state transition that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}
