package components

import (
	"court-booking-engine/internal/domain/discount"
	"court-booking-engine/internal/domain/pricing"
	"court-booking-engine/internal/pkg/clock"
	"court-booking-engine/internal/pkg/config"
	"court-booking-engine/internal/usecase"
	"court-booking-engine/internal/usecase/commands"
	"court-booking-engine/internal/usecase/queries"
	"court-booking-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewPricer,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewFullVenueCommands,
		commands.NewLedgerCommands,
		commands.NewAdminCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewPricingQueries,
		queries.NewReservationQueries,
		queries.NewLedgerQueries,
		queries.NewCatalogQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// NewPricer combines the tariff calculator with the membership discounts from config.
func NewPricer(cfg config.Config) (*shared.Pricer, error) {
	membership, err := discount.NewPolicy(cfg.Membership.Discounts)
	if err != nil {
		return nil, err
	}
	return shared.NewPricer(pricing.NewTariffCalculator(), discount.NewComposer(membership)), nil
}
