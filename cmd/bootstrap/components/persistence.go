package components

import (
	"mesa-reservations/internal/infra/lockstore"
	"mesa-reservations/internal/infra/repository"
	"mesa-reservations/internal/pkg/config"
	"mesa-reservations/internal/usecase/commands"
	"mesa-reservations/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// One repository serves both the write and the read side.
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			NewLockStore,
			fx.As(new(commands.LockStore)),
		),
	),
)

func NewLockStore(client *redis.Client, cfg config.Config) *lockstore.RedisLockStore {
	return lockstore.NewRedisLockStore(client, cfg.Idempotency.TTL, cfg.Redis.OpTimeout)
}
