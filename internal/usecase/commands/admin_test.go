//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"court-booking-engine/internal/domain/audit"
	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/infra/memstore"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/commands"
	"court-booking-engine/internal/usecase/shared"
	"court-booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminResources(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.admin.CreateResource(ctx, env.adminUser, commands.CreateResourceInput{
		Name:     "Center Court",
		Type:     resource.TypeCompetition,
		Capacity: 4,
	})
	require.NoError(t, err)
	assert.True(t, res.IsActive())

	renamed, err := env.admin.UpdateResource(ctx, env.adminUser, res.ID(), commands.UpdateResourceInput{Name: ptrTo("Court 1")})
	require.NoError(t, err)
	assert.Equal(t, "Court 1", renamed.Name())

	_, err = env.admin.UpdateResource(ctx, env.adminUser, res.ID(), commands.UpdateResourceInput{})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))

	_, err = env.admin.CreateResource(ctx, env.adminUser, commands.CreateResourceInput{Name: "", Type: resource.TypeSolo, Capacity: 1})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))

	_, err = env.admin.CreateResource(ctx, member(user.TierVIP), commands.CreateResourceInput{Name: "Rogue", Type: resource.TypeSolo, Capacity: 1})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrForbidden))

	var actions []audit.Action
	for _, rec := range env.store.AuditLog() {
		actions = append(actions, rec.Action)
	}
	assert.Equal(t, []audit.Action{audit.ActionResourceCreate, audit.ActionResourceUpdate}, actions)
}

func TestAdminTariffEditsAffectNewBookingsOnly(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	court := env.seedResource(t, resource.TypeCompetition)
	alice := member(user.TierRegular)
	env.fund(t, alice.UserID, 5000)

	before, err := env.reservations.Reserve(ctx, alice, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 19)})
	require.NoError(t, err)
	require.Equal(t, int64(500), before.Reservation.Price())

	cfg, err := env.admin.AddHoliday(ctx, env.adminUser, builder.Date(2030, time.June, 5), "foundation day")
	require.NoError(t, err)
	assert.True(t, cfg.IsHoliday(builder.Date(2030, time.June, 5)))

	after, err := env.reservations.Reserve(ctx, alice, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(19, 20)})
	require.NoError(t, err)
	assert.Equal(t, int64(600), after.Reservation.Price(), "holidays use the weekend table")

	_, err = env.admin.SetRate(ctx, env.adminUser, commands.RateInput{
		ResourceType:  resource.TypeCompetition,
		DayKind:       tariff.DayKindWeekend,
		Segment:       tariff.SegmentPeak,
		PointsPerHour: 700,
	})
	require.NoError(t, err)
	latest, err := env.reservations.Reserve(ctx, alice, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(20, 21)})
	require.NoError(t, err)
	assert.Equal(t, int64(700), latest.Reservation.Price())

	got, err := env.reservations.Cancel(ctx, alice, before.Reservation.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(500), got.Refunded, "refund follows the stored price")

	_, err = env.admin.SetRate(ctx, env.adminUser, commands.RateInput{
		ResourceType:  resource.TypeCompetition,
		DayKind:       tariff.DayKindWeekday,
		Segment:       tariff.SegmentPeak,
		PointsPerHour: 0,
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))
}

func TestAdminWeekendPolicy(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	cfg, err := env.admin.SetWeekendPolicy(ctx, env.adminUser, commands.WeekendPolicyInput{
		Days:                 []time.Weekday{time.Saturday, time.Sunday},
		IncludeFridayEvening: true,
		FridayEveningHour:    18,
	})
	require.NoError(t, err)

	friday := builder.Date(2030, time.June, 7)
	assert.False(t, tariff.IsWeekendRateAt(friday, 17, *cfg))
	assert.True(t, tariff.IsWeekendRateAt(friday, 18, *cfg))

	_, err = env.admin.SetWeekendPolicy(ctx, env.adminUser, commands.WeekendPolicyInput{
		Days:                 []time.Weekday{time.Saturday},
		IncludeFridayEvening: true,
		FridayEveningHour:    25,
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))
}

func TestAdminRedeemCodes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	params := redeem.NewParams{Code: "spring", Kind: redeem.DiscountPercentage, Value: 10}

	code, err := env.admin.CreateRedeemCode(ctx, env.adminUser, params)
	require.NoError(t, err)
	assert.Equal(t, "SPRING", code.Code())

	_, err = env.admin.CreateRedeemCode(ctx, env.adminUser, params)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrRedeemCodeExists))

	_, err = env.admin.CreateRedeemCode(ctx, env.adminUser, redeem.NewParams{Code: "BAD", Kind: redeem.DiscountPercentage, Value: 150})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrDomainValidation))

	disabled, err := env.admin.DeactivateRedeemCode(ctx, env.adminUser, "Spring")
	require.NoError(t, err)
	assert.False(t, disabled.IsActive())

	_, err = env.admin.DeactivateRedeemCode(ctx, env.adminUser, "MISSING")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrRedeemCodeNotFound))
}

// slowReads widens the gap between a read and the write that follows it.
type slowReads struct{ shared.UnitOfWork }

func (u slowReads) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.UnitOfWork.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return fn(ctx, slowTx{tx})
	})
}

type slowTx struct{ shared.Tx }

func (t slowTx) Tariff() shared.TariffRepository     { return slowTariff{t.Tx.Tariff()} }
func (t slowTx) Resources() shared.ResourceRepository { return slowResources{t.Tx.Resources()} }

type slowTariff struct{ shared.TariffRepository }

func (r slowTariff) Load(ctx context.Context) (*tariff.Config, error) {
	cfg, err := r.TariffRepository.Load(ctx)
	time.Sleep(20 * time.Millisecond)
	return cfg, err
}

type slowResources struct{ shared.ResourceRepository }

func (r slowResources) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, err := r.ResourceRepository.FindByID(ctx, id)
	time.Sleep(20 * time.Millisecond)
	return res, err
}

func TestAdminConcurrentEditsKeepEveryChange(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := commands.NewAdminCommands(slowReads{memstore.NewUoW(env.store)}, env.clock)

	t.Run("holidays added in parallel are all stored", func(t *testing.T) {
		days := []time.Time{
			builder.Date(2031, time.January, 1),
			builder.Date(2031, time.January, 2),
			builder.Date(2031, time.January, 3),
		}
		var wg sync.WaitGroup
		for _, d := range days {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := admin.AddHoliday(ctx, env.adminUser, d, "new year")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		require.NoError(t, env.store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			cfg, err := tx.Tariff().Load(ctx)
			require.NoError(t, err)
			for _, d := range days {
				assert.True(t, cfg.IsHoliday(d), "holiday %s lost", d.Format(time.DateOnly))
			}
			return nil
		}))
	})

	t.Run("rename and deactivate of one resource both land", func(t *testing.T) {
		court := env.seedResource(t, resource.TypeTraining)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := admin.UpdateResource(ctx, env.adminUser, court.ID(), commands.UpdateResourceInput{Name: ptrTo("Court 9")})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := admin.UpdateResource(ctx, env.adminUser, court.ID(), commands.UpdateResourceInput{Active: ptrTo(false)})
			assert.NoError(t, err)
		}()
		wg.Wait()

		require.NoError(t, env.store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			got, err := tx.Resources().FindByID(ctx, court.ID())
			require.NoError(t, err)
			assert.Equal(t, "Court 9", got.Name())
			assert.False(t, got.IsActive())
			return nil
		}))
	})
}
