package event

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// Name identifies an event type on the wire (Kafka header, log attribute).
type Name string

// Event names published on the order events topic.
const (
	OrderCreatedName       Name = "order.created"
	OrderDispatchedName    Name = "order.dispatched"
	OrderInTransitName     Name = "order.in_transit"
	OrderDeliveredName     Name = "order.delivered"
	OrderCancelledName     Name = "order.cancelled"
	OrderPaymentLinkedName Name = "order.payment_linked"
)

// Event is implemented by every domain event through the embedded Metadata.
type Event interface {
	Meta() Metadata
}

// Metadata is the envelope shared by all events. Embedding it flattens the
// fields into the JSON payload of the concrete event.
type Metadata struct {
	ID          kernel.UUID `json:"eventId"`
	Name        Name        `json:"eventName"`
	AggregateID kernel.UUID `json:"aggregateId"`
	OccurredAt  time.Time   `json:"occurredAt"`
}

// NewMetadata assigns a fresh event id and stores occurredAt in UTC.
func NewMetadata(name Name, aggregateID kernel.UUID, occurredAt time.Time) Metadata {
	return Metadata{
		ID:          kernel.NewUUID(),
		Name:        name,
		AggregateID: aggregateID,
		OccurredAt:  occurredAt.UTC(),
	}
}

// Meta returns the envelope. It makes every embedding type an Event.
func (m Metadata) Meta() Metadata {
	return m
}
