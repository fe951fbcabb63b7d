// Package kafka publishes order domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	eventNameHeader   = "event-name"
	contentTypeHeader = "content-type"
	contentTypeJSON   = "application/json"
)

var _ ports.EventPublisher = (*EventPublisher)(nil)

// MessageWriter is the part of *kafka.Writer the publisher relies on.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventPublisher writes every event as one JSON message keyed by the aggregate
// id, so all events of an order land on the same partition in order.
type EventPublisher struct {
	writer MessageWriter
	topic  string
	logger *slog.Logger
}

// NewWriter builds a writer that waits for all in-sync replicas.
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func NewEventPublisher(writer MessageWriter, topic string, logger *slog.Logger) (*EventPublisher, error) {
	if writer == nil {
		return nil, errs.NewValueIsRequiredError("writer")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventPublisher{
		writer: writer,
		topic:  topic,
		logger: logger.With(slog.String("component", "kafka_publisher"), slog.String("topic", topic)),
	}, nil
}

func (p *EventPublisher) Publish(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := p.toMessage(ctx, e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d events to %s: %w", len(msgs), p.topic, err)
	}

	p.logger.DebugContext(ctx, "events published", slog.Int("count", len(msgs)))
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

func (p *EventPublisher) toMessage(ctx context.Context, e event.Event) (kafka.Message, error) {
	if e == nil {
		return kafka.Message{}, errs.NewValueIsRequiredError("event")
	}
	meta := e.Meta()

	payload, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s: %w", meta.Name, err)
	}

	headers := []kafka.Header{
		{Key: eventNameHeader, Value: []byte(meta.Name)},
		{Key: contentTypeHeader, Value: []byte(contentTypeJSON)},
	}

	return kafka.Message{
		Topic:   p.topic,
		Key:     []byte(meta.AggregateID.String()),
		Value:   payload,
		Headers: injectTraceHeaders(ctx, headers),
		Time:    meta.OccurredAt,
	}, nil
}

func injectTraceHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return headers
}
