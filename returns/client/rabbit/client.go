package rabbit

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/glbter/fund-returns/entities"
)

const (
	RENDER_QUEUE = "fund_returns_renders"
)

// Channel is the part of *amqp.Channel the client needs.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

func NewRenderEventClient(channel Channel, queue string) *RenderEventClient {
	if queue == "" {
		queue = RENDER_QUEUE
	}

	return &RenderEventClient{
		channel: channel,
		queue:   queue,
	}
}

type RenderEventClient struct {
	channel Channel
	queue   string
}

func (c *RenderEventClient) Queue() string {
	return c.queue
}

func (c *RenderEventClient) DeclareQueue() error {
	if _, err := c.channel.QueueDeclare(
		c.queue, // name
		false,   // durable
		false,   // delete when unused
		false,   // exclusive
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return fmt.Errorf("declare render queue: %w", err)
	}

	return nil
}

func (c *RenderEventClient) PublishRender(ctx context.Context, event entities.RenderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal render event: %w", err)
	}

	if err := c.channel.PublishWithContext(ctx,
		"",      // exchange
		c.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: event.ID,
			Timestamp:     event.At,
			Body:          body,
		}); err != nil {
		return fmt.Errorf("publish render event: %w", err)
	}

	return nil
}

func (c *RenderEventClient) ReceiveRenders() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return nil, fmt.Errorf("consume render queue: %w", err)
	}

	return msgs, nil
}

// DecodeRender reads a render event from a delivery body.
func DecodeRender(d amqp.Delivery) (entities.RenderEvent, error) {
	var event entities.RenderEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		return entities.RenderEvent{}, fmt.Errorf("decode render event: %w", err)
	}

	return event, nil
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishRender(_ context.Context, _ entities.RenderEvent) error { return nil }
