package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"recruitedge-api/internal/shared/telemetry"
)

// AMQPClient publishes events to, and consumes them from, a durable RabbitMQ queue.
type AMQPClient struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewAMQPClient dials the broker and declares the queue.
func NewAMQPClient(url, queueName string) (*AMQPClient, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("AMQP_URL is required")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}
	return &AMQPClient{conn: conn, ch: ch, queue: queueName}, nil
}

// Publish sends a persistent JSON message to the queue.
func (a *AMQPClient) Publish(ctx context.Context, evt Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := EncodeEvent(evt)
	if err != nil {
		return fmt.Errorf("encode amqp message: %w", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	err = a.ch.Publish(
		"",      // default exchange
		a.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    evt.InteractionID,
			Timestamp:    time.Now().UTC(),
			Type:         evt.Action,
			Body:         payload,
		},
	)
	if err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}
	return nil
}

// Consume delivers messages to handle with at most concurrency in flight.
// Successful messages are acked; failures are nacked and requeued once before
// being dropped. Handlers are not canceled with ctx; Consume returns after ctx
// is cancelled and in-flight work drains, waiting at most drainTimeout.
func (a *AMQPClient) Consume(ctx context.Context, concurrency int, drainTimeout time.Duration, handle Handler) error {
	if concurrency < 1 {
		concurrency = 1
	}
	a.mu.Lock()
	if err := a.ch.Qos(concurrency, 0, false); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("amqp qos: %w", err)
	}
	deliveries, err := a.ch.Consume(
		a.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	a.mu.Unlock()
	if err != nil {
		return fmt.Errorf("amqp consume: %w", err)
	}

	sem := make(chan struct{}, concurrency)
	drain := NewDrain(ctx)
	defer func() {
		if !drain.Wait(drainTimeout) {
			telemetry.Error("queue.amqp.drain_timeout", map[string]any{"timeout_ms": drainTimeout.Milliseconds()})
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("amqp delivery channel closed")
			}
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				_ = d.Nack(false, true)
				return nil
			}
			drain.Go(func(hctx context.Context) {
				defer func() { <-sem }()
				if err := handle(hctx, d.Body); err != nil {
					telemetry.Error("queue.amqp.handle_failed", map[string]any{
						"message_id":  d.MessageId,
						"redelivered": d.Redelivered,
						"error":       err,
					})
					_ = d.Nack(false, !d.Redelivered)
					return
				}
				_ = d.Ack(false)
			})
		}
	}
}

// Ping reports whether the broker connection is still open.
func (a *AMQPClient) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.conn == nil || a.conn.IsClosed() {
		return errors.New("amqp connection closed")
	}
	return nil
}

// Close shuts down the channel and connection.
func (a *AMQPClient) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ch != nil {
		_ = a.ch.Close()
	}
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

var _ Publisher = (*AMQPClient)(nil)
