package rabbitmq

import (
	"context"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/eveeze/ema-spa-website-sub000/internal/config"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/in"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

type (
	EventResourceType string
	EventAction       string
)

const (
	EventResourceTypeReservation EventResourceType = "reservation"
	EventResourceTypeTimeSlot    EventResourceType = "timeslot"
)

const (
	EventActionStore      EventAction = "store"
	EventActionInvalidate EventAction = "invalidate"
)

type EventRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType EventResourceType
	Action       EventAction
}

// InvalidationListener слушает события бэкенда о бронированиях и слотах
// и сбрасывает соответствующие записи кэша, чтобы брони других клиентов
// появлялись без ожидания поллинга
type InvalidationListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.CacheInvalidationUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewInvalidationListener(useCase in.CacheInvalidationUseCase, cfg *config.Config, logger out.LoggerPort) (*InvalidationListener, error) {
	if !cfg.RabbitMq.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMq.AmqpUri,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &InvalidationListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *InvalidationListener) Start(ctx context.Context) error {
	if err := l.startReservationQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("reservation.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.ReservationQueueName,
	})

	if err := l.startTimeSlotQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("timeslot.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.TimeSlotQueueName,
	})

	return nil
}

func (l *InvalidationListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

// Пример routingKey:
// backend.ema-client.reservation.invalidate
// backend.ema-client.timeslot.invalidate
func (l *InvalidationListener) parseEventRoutingKey(msg amqp.Delivery) (EventRoutingKey, error) {
	routingKey := msg.RoutingKey
	parts := strings.Split(routingKey, ".")

	if len(parts) < 4 {
		return EventRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return EventRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: EventResourceType(parts[2]),
		Action:       EventAction(parts[3]),
	}, nil
}

func (l *InvalidationListener) consume(ctx context.Context, queueName, bind, exchange string, process func(context.Context, amqp.Delivery) error) error {
	queue, err := l.channel.QueueDeclare(
		queueName,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	err = l.channel.QueueBind(
		queue.Name,
		bind,
		exchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				if err := process(ctx, msg); err != nil {
					msg.Nack(false, true) // requeue message
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}
