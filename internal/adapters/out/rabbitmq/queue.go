// Package rabbitmq implements the durable violation queue on RabbitMQ.
// One durable queue per violation type carries persistent JSON jobs from the
// detector to the escalation workers; manual acknowledgement plus
// nack-with-requeue gives the queue-level retry the pipeline depends on.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueNameFor returns the queue carrying jobs of the given violation type,
// e.g. "sla.violation.pickup".
func QueueNameFor(violationType services.ViolationType) string {
	return "sla.violation." + string(violationType)
}

// Client wraps an AMQP connection and channel. A single client is shared by
// the publisher and the consumers; the channel is not safe for concurrent
// publishing, so the detector is the only writer.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewClient dials the broker, opens a channel and declares one durable queue
// per violation type so publisher and consumers agree on topology regardless
// of startup order.
func NewClient(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{conn: conn, channel: channel}
	for _, violationType := range services.AllViolationTypes() {
		if err = client.declareQueue(QueueNameFor(violationType)); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("declare queue for %s: %w", violationType, err)
		}
	}

	return client, nil
}

// Close releases the channel and the underlying connection.
func (c *Client) Close() error {
	if err := c.channel.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}

func (c *Client) declareQueue(name string) error {
	_, err := c.channel.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	return err
}

// publish sends a persistent message to the named queue via the default exchange.
func (c *Client) publish(ctx context.Context, queueName string, body []byte) error {
	return c.channel.PublishWithContext(
		ctx,
		"",        // exchange
		queueName, // routing key (queue name)
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// consume opens a manual-acknowledgement delivery stream for the named queue.
func (c *Client) consume(queueName string) (<-chan amqp.Delivery, error) {
	return c.channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
}

// ViolationQueue implements the detector's outbound queue port.
type ViolationQueue struct {
	client *Client
}

// NewViolationQueue creates a queue publisher over the shared client.
func NewViolationQueue(client *Client) *ViolationQueue {
	return &ViolationQueue{client: client}
}

// Enqueue publishes the job to the queue of its violation type. The message
// is persistent, so a broker restart does not lose accepted jobs.
func (q *ViolationQueue) Enqueue(ctx context.Context, job ports.ViolationJob) error {
	if err := job.ID.Validate(); err != nil {
		return err
	}
	if err := job.Violation.Type.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(messageFromJob(job))
	if err != nil {
		return fmt.Errorf("marshal violation job %s: %w", job.ID, err)
	}

	return q.client.publish(ctx, QueueNameFor(job.Violation.Type), body)
}
