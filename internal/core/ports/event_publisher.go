package ports

import (
	"context"

	"ordering/internal/core/domain/model/event"
)

// EventPublisher delivers domain events to other contexts. Ordering and
// delivery guarantees belong to the implementation.
type EventPublisher interface {
	// Publish sends the events in the given order. Implementations may return
	// after a partial write; the caller logs and does not retry.
	Publish(ctx context.Context, events ...event.Event) error
}
