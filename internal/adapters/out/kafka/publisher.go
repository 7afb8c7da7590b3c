// Package kafka publishes lifecycle events to a Kafka topic. Publishing is
// fire-and-forget: the state change has already been committed by the time an
// event reaches this adapter, so a broker failure is logged and counted but
// never propagated back to the caller.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/observability"

	"github.com/segmentio/kafka-go"
)

const publishTimeout = 2 * time.Second

// Publisher writes event envelopes to a single Kafka topic, keyed by the
// event's correlation id so one aggregate's events stay ordered within a
// partition.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewPublisher creates a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})

	return &Publisher{
		writer: writer,
		logger: logger.With("component", "kafka_publisher"),
	}
}

// Publish serializes the event and hands it to the broker. Failures are
// swallowed after logging; callers must not depend on delivery.
func (p *Publisher) Publish(ctx context.Context, event events.Event) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logFailure(ctx, event, err)
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(event.Key()),
		Value: value,
	})
	if err != nil {
		p.logFailure(ctx, event, err)
		return
	}

	observability.EventsPublishedTotal.WithLabelValues(event.Metadata.Type).Inc()
}

// Close flushes and shuts down the underlying writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *Publisher) logFailure(ctx context.Context, event events.Event, err error) {
	observability.EventPublishFailuresTotal.WithLabelValues(event.Metadata.Type).Inc()
	p.logger.WarnContext(ctx, "event publish failed",
		"event_type", event.Metadata.Type,
		"correlation_id", event.Metadata.CorrelationID,
		"error", err,
	)
}
