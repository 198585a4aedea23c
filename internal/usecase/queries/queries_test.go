//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"court-booking-engine/internal/domain/discount"
	"court-booking-engine/internal/domain/pricing"
	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/infra/memstore"
	"court-booking-engine/internal/pkg/clock"
	"court-booking-engine/internal/pkg/config"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/queries"
	"court-booking-engine/internal/usecase/shared"
	"court-booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	wednesday = builder.Date(2030, time.June, 5)
	thursday  = builder.Date(2030, time.June, 6)
	testNow   = wednesday.Add(9 * time.Hour)
)

type queryEnv struct {
	store        *memstore.Store
	availability queries.AvailabilityQueries
	pricing      queries.PricingQueries
	reservations queries.ReservationQueries
	ledger       queries.LedgerQueries
	catalog      queries.CatalogQueries
}

func newQueryEnv(t *testing.T) *queryEnv {
	t.Helper()
	cfg := config.NewTestConfig()
	policy, err := shared.NewBookingPolicy(cfg.Booking)
	require.NoError(t, err)
	membership, err := discount.NewPolicy(cfg.Membership.Discounts)
	require.NoError(t, err)
	pricer := shared.NewPricer(pricing.NewTariffCalculator(), discount.NewComposer(membership))

	store := memstore.New()
	uow := memstore.NewUoW(store)
	clk := clock.NewMockClock(testNow)
	return &queryEnv{
		store:        store,
		availability: queries.NewAvailabilityQueries(uow, pricer, policy, clk),
		pricing:      queries.NewPricingQueries(uow, pricer, policy, clk),
		reservations: queries.NewReservationQueries(uow),
		ledger:       queries.NewLedgerQueries(uow),
		catalog:      queries.NewCatalogQueries(uow),
	}
}

func (e *queryEnv) seed(t *testing.T, fn func(ctx context.Context, tx shared.Tx) error) {
	t.Helper()
	require.NoError(t, e.store.Within(context.Background(), fn))
}

func (e *queryEnv) seedResource(t *testing.T, rt resource.Type) *resource.Resource {
	t.Helper()
	res := builder.NewResourceBuilder().With(func(b *builder.ResourceBuilder) {
		b.ID = uuid.New()
		b.Type = rt
	}).MustBuild()
	e.seed(t, func(ctx context.Context, tx shared.Tx) error { return tx.Resources().Create(ctx, res) })
	return res
}

func (e *queryEnv) seedReservation(t *testing.T, mutate func(b *builder.ReservationBuilder)) *reservation.Reservation {
	t.Helper()
	r := builder.NewReservationBuilder().With(mutate).MustBuild()
	e.seed(t, func(ctx context.Context, tx shared.Tx) error { return tx.Reservations().Create(ctx, r) })
	return r
}

func TestCheckBatchMatchesSingleChecks(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv(t)
	court := env.seedResource(t, resource.TypeCompetition)
	env.seedReservation(t, func(b *builder.ReservationBuilder) {
		b.ResourceID = court.ID()
		b.Slot = builder.Slot(wednesday, 18, 20)
	})

	halfHour, err := reservation.NewTimeSlot(wednesday, 21*60, 21*60+30)
	require.NoError(t, err)
	slots := []reservation.TimeSlot{
		builder.Slot(wednesday, 17, 18),
		builder.Slot(wednesday, 19, 20),
		builder.Slot(wednesday, 8, 9),
		builder.Slot(thursday, 18, 20),
		builder.Slot(thursday, 4, 6),
		halfHour,
	}

	items, err := env.availability.CheckBatch(ctx, court.ID(), slots)
	require.NoError(t, err)
	require.Len(t, items, len(slots))

	for i, slot := range slots {
		single, err := env.availability.IsAvailable(ctx, court.ID(), slot)
		require.NoError(t, err)
		assert.Equal(t, single, items[i].Availability, "slot %s", slot)
	}

	assert.True(t, items[0].Availability.Available)
	assert.Equal(t, reservation.ReasonOccupied, items[1].Availability.Reason)
	assert.Equal(t, reservation.ReasonPast, items[2].Availability.Reason)
	assert.True(t, items[3].Availability.Available)
	assert.Equal(t, reservation.ReasonOutsideOperatingHours, items[4].Availability.Reason)

	require.NotNil(t, items[0].BasePrice)
	assert.Equal(t, int64(500), *items[0].BasePrice)
	require.NotNil(t, items[3].BasePrice)
	assert.Equal(t, int64(1000), *items[3].BasePrice)
	assert.Nil(t, items[5].BasePrice, "half hours cannot be priced")
}

func TestCheckBatchLimits(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv(t)
	court := env.seedResource(t, resource.TypeCompetition)

	_, err := env.availability.CheckBatch(ctx, court.ID(), nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))

	tooMany := make([]reservation.TimeSlot, 49)
	for i := range tooMany {
		tooMany[i] = builder.Slot(thursday, 18, 19)
	}
	_, err = env.availability.CheckBatch(ctx, court.ID(), tooMany)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))

	_, err = env.availability.CheckBatch(ctx, uuid.New(), []reservation.TimeSlot{builder.Slot(thursday, 18, 19)})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrResourceNotFound))
}

func TestQuote(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv(t)
	court := env.seedResource(t, resource.TypeCompetition)
	solo := env.seedResource(t, resource.TypeSolo)
	code := builder.NewRedeemCodeBuilder().With(func(b *builder.RedeemCodeBuilder) {
		b.Params.Code = "TENOFF"
	}).Percentage(10).MustBuild()
	env.seed(t, func(ctx context.Context, tx shared.Tx) error { return tx.RedeemCodes().Create(ctx, code) })
	vip := user.Identity{UserID: uuid.New(), Role: user.RoleMember, Tier: user.TierVIP}

	t.Run("full venue quote runs one discount pass", func(t *testing.T) {
		got, err := env.pricing.Quote(ctx, vip, queries.QuoteInput{
			ResourceIDs: []uuid.UUID{court.ID(), solo.ID()},
			Slot:        builder.Slot(wednesday, 18, 19),
			RedeemCode:  "tenoff",
		})
		require.NoError(t, err)

		// (500 + 250) less 20% is 600, less 10% is 540
		assert.Equal(t, int64(750), got.BasePrice())
		assert.Equal(t, int64(540), got.FinalPrice())
		require.Len(t, got.Available, 2)
		assert.True(t, got.Available[0].Available)
		assert.True(t, got.Available[1].Available)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := env.pricing.Quote(ctx, vip, queries.QuoteInput{
			ResourceIDs: []uuid.UUID{court.ID()},
			Slot:        builder.Slot(wednesday, 18, 19),
			RedeemCode:  "MISSING",
		})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrRedeemCodeInvalid))
	})

	t.Run("no resources", func(t *testing.T) {
		_, err := env.pricing.Quote(ctx, vip, queries.QuoteInput{Slot: builder.Slot(wednesday, 18, 19)})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})

	t.Run("missing slot is an invalid interval", func(t *testing.T) {
		_, err := env.pricing.Quote(ctx, vip, queries.QuoteInput{ResourceIDs: []uuid.UUID{court.ID()}})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidInterval), "got %v", err)
		assert.False(t, errs.Is(err, errs.ErrPricingConfig))
	})
}

func TestReservationQueries(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv(t)
	court := env.seedResource(t, resource.TypeCompetition)
	alice := user.Identity{UserID: uuid.New(), Role: user.RoleMember, Tier: user.TierRegular}
	bob := user.Identity{UserID: uuid.New(), Role: user.RoleMember, Tier: user.TierRegular}
	operator := user.Identity{UserID: uuid.New(), Role: user.RoleOperator, Tier: user.TierRegular}

	var mine []*reservation.Reservation
	for i := range 3 {
		mine = append(mine, env.seedReservation(t, func(b *builder.ReservationBuilder) {
			b.ResourceID = court.ID()
			b.UserID = alice.UserID
			b.Slot = builder.Slot(wednesday, 10+i, 11+i)
			b.Now = testNow.Add(-time.Duration(3-i) * time.Hour)
		}))
	}

	t.Run("owner and staff can read, others see nothing", func(t *testing.T) {
		got, err := env.reservations.GetByID(ctx, alice, mine[0].ID())
		require.NoError(t, err)
		assert.Equal(t, mine[0].ID(), got.ID())

		_, err = env.reservations.GetByID(ctx, operator, mine[0].ID())
		require.NoError(t, err)

		_, err = env.reservations.GetByID(ctx, bob, mine[0].ID())
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrReservationNotFound))
	})

	t.Run("list mine pages newest first", func(t *testing.T) {
		first, err := env.reservations.ListMine(ctx, alice, "", 2)
		require.NoError(t, err)
		require.Len(t, first.Items, 2)
		assert.Equal(t, mine[2].ID(), first.Items[0].ID())
		assert.Equal(t, mine[1].ID(), first.Items[1].ID())
		require.NotEmpty(t, first.NextCursor)

		second, err := env.reservations.ListMine(ctx, alice, first.NextCursor, 2)
		require.NoError(t, err)
		require.Len(t, second.Items, 1)
		assert.Equal(t, mine[0].ID(), second.Items[0].ID())
		assert.Empty(t, second.NextCursor)

		_, err = env.reservations.ListMine(ctx, alice, "not-a-cursor", 2)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})

	t.Run("day view is staff only", func(t *testing.T) {
		got, err := env.reservations.ListByResourceDate(ctx, operator, court.ID(), wednesday)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, 10*60, got[0].TimeSlot().StartMinute())

		_, err = env.reservations.ListByResourceDate(ctx, alice, court.ID(), wednesday)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})
}

func TestLedgerQueries(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv(t)
	alice := user.Identity{UserID: uuid.New(), Role: user.RoleMember, Tier: user.TierRegular}

	got, err := env.ledger.Balance(ctx, alice, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Balance)

	_, err = env.ledger.Balance(ctx, alice, uuid.New())
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrForbidden))

	history, err := env.ledger.History(ctx, alice, alice.UserID, "", 0)
	require.NoError(t, err)
	assert.Empty(t, history.Items)
}

func TestCatalogQueries(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv(t)
	env.seedResource(t, resource.TypeCompetition)
	env.seedResource(t, resource.TypeSolo)
	code := builder.NewRedeemCodeBuilder().MustBuild()
	env.seed(t, func(ctx context.Context, tx shared.Tx) error { return tx.RedeemCodes().Create(ctx, code) })

	resources, err := env.catalog.Resources(ctx)
	require.NoError(t, err)
	assert.Len(t, resources, 2)

	cfg, err := env.catalog.Tariff(ctx)
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, cfg.WeekendDays)

	member := user.Identity{UserID: uuid.New(), Role: user.RoleMember}
	_, err = env.catalog.RedeemCodes(ctx, member)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrForbidden))

	codes, err := env.catalog.RedeemCodes(ctx, user.Identity{UserID: uuid.New(), Role: user.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, redeem.DiscountFixed, codes[0].Discount().Kind())
}
