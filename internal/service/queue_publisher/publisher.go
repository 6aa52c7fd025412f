// Package queue_publisher provides functions to publish domain events to
// RabbitMQ.  Errors are logged and returned so callers can ignore
// failures without interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/weather-mood/internal/queue"
)

const readingStoredQueue = "weather.reading.stored"

// PublishReadingStored publishes a ReadingStoredEvent to the
// "weather.reading.stored" queue on the broker at url (from
// config.Config.AMQPURL).  The function never panics; any error is
// logged and returned so the caller can choose to ignore it.  Messages
// are marked as persistent.
func PublishReadingStored(ctx context.Context, url string, event q.ReadingStoredEvent) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		slog.Warn("rabbitmq dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		slog.Warn("rabbitmq channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent).  Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(readingStoredQueue, true, false, false, false, nil); err != nil {
		slog.Warn("rabbitmq queue declare failed", "err", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		slog.Warn("rabbitmq marshal event failed", "err", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", readingStoredQueue, false, false, pub); err != nil {
		slog.Warn("rabbitmq publish failed", "err", err)
		return err
	}
	return nil
}
