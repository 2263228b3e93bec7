package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"parceltrack/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

// fakeWriter captures written messages instead of talking to a broker.
type fakeWriter struct {
	messages []skafka.Message
	writeErr error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...skafka.Message) error {
	if w.writeErr != nil {
		return w.writeErr
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestStatusEventPublisher_PublishStatusChanged(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewStatusEventPublisherWithWriter(writer)

	event := ports.StatusChangedEvent{
		AWB:            "AWB-8001",
		PreviousStatus: "in_transit",
		NewStatus:      "in_hub",
		ActorID:        "operator-7",
		OccurredAt:     time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC),
	}

	err := publisher.PublishStatusChanged(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, writer.messages, 1)
	require.Equal(t, []byte("AWB-8001"), writer.messages[0].Key)

	var decoded ports.StatusChangedEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	require.Equal(t, event, decoded)
}

func TestStatusEventPublisher_PublishStatusChanged_WriteError(t *testing.T) {
	writer := &fakeWriter{writeErr: errors.New("broker unavailable")}
	publisher := NewStatusEventPublisherWithWriter(writer)

	err := publisher.PublishStatusChanged(context.Background(), ports.StatusChangedEvent{AWB: "AWB-8002"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "AWB-8002")
}

func TestStatusEventPublisher_Close(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewStatusEventPublisherWithWriter(writer)

	require.NoError(t, publisher.Close())
	require.True(t, writer.closed)
}
