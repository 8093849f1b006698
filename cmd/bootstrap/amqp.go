package bootstrap

import (
	"context"

	"mesa-reservations/internal/pkg/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

var AMQPModule = fx.Module("amqp",
	fx.Provide(
		NewAMQPConnection,
	),
)

func NewAMQPConnection(lc fx.Lifecycle, cfg config.Config) (*amqp.Connection, error) {
	conn, err := amqp.Dial(cfg.AMQP.URL)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return conn.Close()
		},
	})

	return conn, nil
}
