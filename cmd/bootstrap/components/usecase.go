package components

import (
	"mesa-reservations/internal/pkg/clock"
	"mesa-reservations/internal/pkg/config"
	"mesa-reservations/internal/usecase/commands"
	"mesa-reservations/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewReservationCommands,
		queries.NewReservationQueries,
	),
)

func NewReservationCommands(
	cfg config.Config,
	lockStore commands.LockStore,
	repo commands.ReservationRepository,
	notifier commands.EventNotifier,
) commands.ReservationCommands {
	return commands.NewReservationCommands(lockStore, repo, notifier, cfg.DB.WriteTimeout)
}
