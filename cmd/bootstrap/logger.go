package bootstrap

import (
	"log/slog"

	"court-booking-engine/internal/handler/middleware"
	"court-booking-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger also installs the logger as the slog default, which the usecase layer logs through.
func NewLogger(cfg config.Config) *slog.Logger {
	logger := middleware.NewLogger(cfg.Log).Slog()
	slog.SetDefault(logger)
	return logger
}
