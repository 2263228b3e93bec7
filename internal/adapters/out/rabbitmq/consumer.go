package rabbitmq

import (
	"context"
	"encoding/json"
	"log/slog"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/services"
)

// ViolationConsumer is the escalation worker for one violation type. It
// drains the type's queue and hands each job to the recording handler.
//
// Delivery semantics:
//   - handler success: the message is acknowledged and leaves the queue
//   - handler failure: the message is negatively acknowledged with requeue,
//     so the broker redelivers it; the job ID keeps the eventual audit
//     record unique across redeliveries
//   - undecodable message: dropped without requeue, redelivery cannot fix it
type ViolationConsumer struct {
	client        *Client
	violationType services.ViolationType
	handler       commands.RecordViolationCommandHandler
	logger        *slog.Logger
}

// NewViolationConsumer creates a worker bound to one violation type's queue.
func NewViolationConsumer(
	client *Client,
	violationType services.ViolationType,
	handler commands.RecordViolationCommandHandler,
	logger *slog.Logger,
) (*ViolationConsumer, error) {
	if err := violationType.Validate(); err != nil {
		return nil, err
	}

	return &ViolationConsumer{
		client:        client,
		violationType: violationType,
		handler:       handler,
		logger: logger.With(
			"component", "violation-consumer",
			"queue", QueueNameFor(violationType),
		),
	}, nil
}

// Run consumes the queue until the context is cancelled or the broker closes
// the delivery stream.
func (c *ViolationConsumer) Run(ctx context.Context) error {
	deliveries, err := c.client.consume(QueueNameFor(c.violationType))
	if err != nil {
		return err
	}

	c.logger.Info("violation consumer started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("violation consumer stopped")
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				c.logger.Warn("delivery stream closed")
				return nil
			}
			c.process(ctx, delivery.Body, delivery)
		}
	}
}

// acknowledger is the subset of amqp.Delivery used to settle a message.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple bool, requeue bool) error
}

func (c *ViolationConsumer) process(ctx context.Context, body []byte, delivery acknowledger) {
	var message violationJobMessage
	if err := json.Unmarshal(body, &message); err != nil {
		c.logger.Error("dropping undecodable violation job", "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	job, err := message.toJob()
	if err != nil {
		c.logger.Error("dropping invalid violation job", "jobId", message.JobID, "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	command, err := commands.NewRecordViolationCommand(job)
	if err != nil {
		c.logger.Error("dropping invalid violation job", "jobId", message.JobID, "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	if err = c.handler.Handle(ctx, command); err != nil {
		c.logger.Error("violation job failed, requeueing",
			"jobId", job.ID.String(), "awb", job.Violation.AWB.String(), "error", err)
		_ = delivery.Nack(false, true)
		return
	}

	_ = delivery.Ack(false)
}
