package bootstrap

import (
	"context"
	"log/slog"

	"court-booking-engine/internal/infra/db"
	"court-booking-engine/internal/infra/memstore"
	"court-booking-engine/internal/infra/uow"
	"court-booking-engine/internal/pkg/config"
	"court-booking-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork opens the store selected by STORE_DRIVER.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, policy shared.BookingPolicy, logger *slog.Logger) (shared.UnitOfWork, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		return memstore.NewUoW(memstore.New()), nil
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return uow.NewPostgresUoW(pool, policy.Location), nil
}
