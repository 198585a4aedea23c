package bootstrap

import (
	"court-booking-engine/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	ObservabilityModule,
	components.UseCaseModule,
	components.HandlerModule,
)
