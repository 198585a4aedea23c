package components

import (
	"court-booking-engine/internal/handler"
	"court-booking-engine/internal/handler/api"
	"court-booking-engine/internal/handler/middleware"
	"court-booking-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCatalogHandler,
		api.NewBookingHandler,
		api.NewReservationHandler,
		api.NewFullVenueHandler,
		api.NewLedgerHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.RateLimit)
		},
	),
	fx.Invoke(handler.NewRouter),
)
