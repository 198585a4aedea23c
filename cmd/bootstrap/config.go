package bootstrap

import (
	"court-booking-engine/internal/pkg/config"
	"court-booking-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewBookingPolicy,
	),
)

func NewBookingPolicy(cfg config.Config) (shared.BookingPolicy, error) {
	return shared.NewBookingPolicy(cfg.Booking)
}
