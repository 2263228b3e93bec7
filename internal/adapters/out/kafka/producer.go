// Package kafka implements the shipment status event stream on Kafka.
// Events are keyed by AWB so every consumer sees one shipment's transitions
// in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"parceltrack/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
)

// Writer is the subset of the kafka writer the publisher needs.
// Narrowing the dependency keeps the publisher testable without a broker.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// StatusEventPublisher implements the outbound status event port.
type StatusEventPublisher struct {
	writer Writer
}

// NewStatusEventPublisher creates a publisher writing to the given broker and topic.
func NewStatusEventPublisher(brokerURL, topic string) *StatusEventPublisher {
	writer := &skafka.Writer{
		Addr:     skafka.TCP(brokerURL),
		Topic:    topic,
		Balancer: &skafka.LeastBytes{},
	}
	return &StatusEventPublisher{writer: writer}
}

// NewStatusEventPublisherWithWriter allows injecting a test writer.
func NewStatusEventPublisherWithWriter(writer Writer) *StatusEventPublisher {
	return &StatusEventPublisher{writer: writer}
}

// PublishStatusChanged writes the event as a JSON message keyed by AWB.
func (p *StatusEventPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal status event for %s: %w", event.AWB, err)
	}

	message := skafka.Message{
		Key:   []byte(event.AWB),
		Value: body,
	}
	if err = p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("write status event for %s: %w", event.AWB, err)
	}

	return nil
}

// Close closes the underlying writer.
func (p *StatusEventPublisher) Close() error {
	return p.writer.Close()
}
