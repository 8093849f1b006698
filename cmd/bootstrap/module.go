package bootstrap

import (
	"mesa-reservations/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	AMQPModule,
	JWTModule,
	components.PersistenceModule,
	components.NotifierModule,
	components.UseCaseModule,
	components.HandlerModule,
)
