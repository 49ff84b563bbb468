package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

type TimeSlotEventMessage struct {
	Date string `json:"date"`
}

func (l *InvalidationListener) startTimeSlotQueue(ctx context.Context) error {
	return l.consume(ctx,
		l.cfg.RabbitMq.QueueConfig.TimeSlotQueueName,
		l.cfg.RabbitMq.QueueConfig.TimeSlotQueueBind,
		l.cfg.RabbitMq.QueueConfig.TimeSlotQueueExchange,
		l.processTimeSlotMessage,
	)
}

func (l *InvalidationListener) processTimeSlotMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseEventRoutingKey(msg)
	if err != nil {
		return err
	}

	if routingKey.ResourceType != EventResourceTypeTimeSlot {
		return nil
	}

	var msgJson TimeSlotEventMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return err
	}

	l.logger.Info("timeslot.message.received", out.LogFields{
		"date":   msgJson.Date,
		"action": string(routingKey.Action),
	})

	if routingKey.Action != EventActionInvalidate {
		return nil
	}

	return l.useCase.InvalidateAvailabilityDate(ctx, msgJson.Date)
}
