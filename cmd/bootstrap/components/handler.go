package components

import (
	"mesa-reservations/internal/handler"
	"mesa-reservations/internal/handler/api"
	"mesa-reservations/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
