// Package event provides publishers for rating change events.
package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"storerate/config"
	"storerate/internal/domain/service"
	"storerate/internal/errors"
)

const defaultQueue = "rating_events"

// rabbitPublisher publishes rating events to a durable RabbitMQ queue.
type rabbitPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *slog.Logger
}

// New builds an EventPublisher from configuration. Without an AMQP section
// the returned publisher is a no-op, so the rating flow never depends on a
// broker being present.
func New(cfg *config.Config, logger *slog.Logger) (service.EventPublisher, error) {
	if cfg.AMQP == nil || cfg.AMQP.URL == "" {
		logger.Info("amqp not configured, rating events disabled")

		return NewNoop(), nil
	}

	return NewRabbitPublisher(cfg.AMQP, logger)
}

// NewRabbitPublisher connects to RabbitMQ and declares the rating queue.
func NewRabbitPublisher(cfg *config.AMQPConfig, logger *slog.Logger) (service.EventPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "connect to rabbitmq")
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()

		return nil, errors.Wrap(err, "open channel")
	}

	queue := cfg.Queue
	if queue == "" {
		queue = defaultQueue
	}

	// Durable queue so events survive broker restarts.
	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()

		return nil, errors.Wrapf(err, "declare queue %s", queue)
	}

	logger.Info("rabbitmq publisher connected", slog.String("queue", queue))

	return &rabbitPublisher{
		conn:    conn,
		channel: channel,
		queue:   queue,
		logger:  logger,
	}, nil
}

// PublishRatingEvent marshals the event to JSON and publishes it persistently.
func (p *rabbitPublisher) PublishRatingEvent(ctx context.Context, event *service.RatingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal rating event")
	}

	if err := p.channel.Publish(
		"",      // exchange: default exchange
		p.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	); err != nil {
		return errors.Wrap(err, "publish rating event")
	}

	p.logger.DebugContext(ctx, "rating event published",
		slog.String("event", event.Event),
		slog.Int64("rating_id", event.RatingID))

	return nil
}

// Close closes the RabbitMQ channel and connection.
func (p *rabbitPublisher) Close() error {
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "close channel"))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "close connection"))
		}
	}

	return errors.Join(errs...)
}
