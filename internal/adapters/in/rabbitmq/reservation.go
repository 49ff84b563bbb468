package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/eveeze/ema-spa-website-sub000/internal/core/ports/out"
)

type ReservationEventMessage struct {
	ReservationID string `json:"reservationId"`
	Date          string `json:"sessionDate"`
}

func (l *InvalidationListener) startReservationQueue(ctx context.Context) error {
	return l.consume(ctx,
		l.cfg.RabbitMq.QueueConfig.ReservationQueueName,
		l.cfg.RabbitMq.QueueConfig.ReservationQueueBind,
		l.cfg.RabbitMq.QueueConfig.ReservationQueueExchange,
		l.processReservationMessage,
	)
}

func (l *InvalidationListener) processReservationMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseEventRoutingKey(msg)
	if err != nil {
		return err
	}

	if routingKey.ResourceType != EventResourceTypeReservation {
		return nil
	}

	var msgJson ReservationEventMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return err
	}

	l.logger.Info("reservation.message.received", out.LogFields{
		"reservationId": msgJson.ReservationID,
		"date":          msgJson.Date,
		"action":        string(routingKey.Action),
	})

	if routingKey.Action != EventActionInvalidate {
		return nil
	}

	if err := l.useCase.InvalidateReservations(ctx); err != nil {
		return err
	}

	if msgJson.Date != "" {
		if err := l.useCase.InvalidateAvailabilityDate(ctx, msgJson.Date); err != nil {
			l.logger.Warn("reservation.message.invalidate_date_failed", out.LogFields{
				"date":  msgJson.Date,
				"error": err.Error(),
			})
		}
	}

	return nil
}
