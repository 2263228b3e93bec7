package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/require"
)

type capturingAuditSink struct {
	appendErr error
	records   []ports.AuditRecord
}

func (s *capturingAuditSink) Append(_ context.Context, record ports.AuditRecord) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.records = append(s.records, record)
	return nil
}

type fakeDelivery struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (d *fakeDelivery) Ack(_ bool) error {
	d.acked = true
	return nil
}

func (d *fakeDelivery) Nack(_ bool, requeue bool) error {
	d.nacked = true
	d.requeue = requeue
	return nil
}

func newTestConsumer(t *testing.T, sink ports.AuditSink) *ViolationConsumer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := commands.NewRecordViolationCommandHandler(sink, logger)
	consumer, err := NewViolationConsumer(nil, services.ViolationPickup, handler, logger)
	require.NoError(t, err)
	return consumer
}

func violationJobBody(t *testing.T, job ports.ViolationJob) []byte {
	t.Helper()
	body, err := json.Marshal(messageFromJob(job))
	require.NoError(t, err)
	return body
}

func pickupViolationJob(t *testing.T) ports.ViolationJob {
	t.Helper()
	awb, err := kernel.NewAWB("AWB-7010")
	require.NoError(t, err)
	return ports.ViolationJob{
		ID: kernel.NewUUID(),
		Violation: services.Violation{
			ShipmentID: kernel.NewUUID(),
			AWB:        awb,
			Type:       services.ViolationPickup,
			AllowedSLA: 24 * time.Hour,
			Status:     shipment.Pending,
			LastUpdate: time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestViolationConsumer_Process_HandlerSuccess_Acks(t *testing.T) {
	sink := &capturingAuditSink{}
	consumer := newTestConsumer(t, sink)
	job := pickupViolationJob(t)
	delivery := &fakeDelivery{}

	consumer.process(context.Background(), violationJobBody(t, job), delivery)

	require.True(t, delivery.acked)
	require.False(t, delivery.nacked)
	require.Len(t, sink.records, 1)
	require.Equal(t, job.ID, sink.records[0].ID)
	require.Equal(t, "sla_violation_detected", sink.records[0].Action)
	require.Equal(t, "AWB-7010", sink.records[0].EntityID)
}

func TestViolationConsumer_Process_HandlerFailure_RequeuesMessage(t *testing.T) {
	sink := &capturingAuditSink{appendErr: errors.New("sink down")}
	consumer := newTestConsumer(t, sink)
	delivery := &fakeDelivery{}

	consumer.process(context.Background(), violationJobBody(t, pickupViolationJob(t)), delivery)

	require.False(t, delivery.acked)
	require.True(t, delivery.nacked)
	require.True(t, delivery.requeue)
}

func TestViolationConsumer_Process_UndecodableBody_DroppedWithoutRequeue(t *testing.T) {
	sink := &capturingAuditSink{}
	consumer := newTestConsumer(t, sink)
	delivery := &fakeDelivery{}

	consumer.process(context.Background(), []byte("not json"), delivery)

	require.False(t, delivery.acked)
	require.True(t, delivery.nacked)
	require.False(t, delivery.requeue)
	require.Empty(t, sink.records)
}

func TestViolationConsumer_Process_InvalidJobFields_DroppedWithoutRequeue(t *testing.T) {
	sink := &capturingAuditSink{}
	consumer := newTestConsumer(t, sink)
	delivery := &fakeDelivery{}

	message := messageFromJob(pickupViolationJob(t))
	message.Type = "weekend"
	body, err := json.Marshal(message)
	require.NoError(t, err)

	consumer.process(context.Background(), body, delivery)

	require.False(t, delivery.acked)
	require.True(t, delivery.nacked)
	require.False(t, delivery.requeue)
	require.Empty(t, sink.records)
}
