package components

import (
	"context"

	"mesa-reservations/internal/infra/notifier"
	"mesa-reservations/internal/pkg/config"
	"mesa-reservations/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewDispatcher,
		NewTableEventPublisher,
		fx.Annotate(
			NewWebhookEmitter,
			fx.As(new(notifier.AutomationEmitter)),
		),
		fx.Annotate(
			notifier.NewEventNotifier,
			fx.As(new(commands.EventNotifier)),
		),
	),
)

func NewWebhookEmitter(cfg config.Config) *notifier.WebhookEmitter {
	return notifier.NewWebhookEmitter(cfg.Automation)
}

func NewDispatcher(lc fx.Lifecycle, cfg config.Config) *notifier.Dispatcher {
	d := notifier.NewDispatcher(cfg.Notifier.Workers, cfg.Notifier.QueueSize, cfg.Notifier.TaskTimeout)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			d.Close()
			return nil
		},
	})

	return d
}

func NewTableEventPublisher(lc fx.Lifecycle, conn *amqp.Connection, cfg config.Config) (notifier.TablePublisher, error) {
	pub, err := notifier.NewTableEventPublisher(conn, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})

	return pub, nil
}
