package notifier

import (
	"context"
	"encoding/json"

	"mesa-reservations/internal/domain/event"
	"mesa-reservations/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// TableEventPublisher pushes occupancy events to the table service over a
// durable topic exchange. The event type doubles as the routing key.
type TableEventPublisher struct {
	ch       *amqp.Channel
	exchange string
}

func NewTableEventPublisher(conn *amqp.Connection, exchange string) (*TableEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, errs.Wrap(err, "failed to open amqp channel")
	}

	// Declare up front so publish never fails on missing infra.
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, errs.Wrap(err, "failed to declare exchange")
	}

	return &TableEventPublisher{ch: ch, exchange: exchange}, nil
}

func (p *TableEventPublisher) Close() error {
	return p.ch.Close()
}

func (p *TableEventPublisher) Publish(ctx context.Context, ev event.TableEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return errs.Wrap(err, "failed to marshal table event")
	}

	err = p.ch.PublishWithContext(
		ctx,
		p.exchange,
		ev.Type,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return errs.Wrap(err, "failed to publish table event")
	}

	return nil
}
