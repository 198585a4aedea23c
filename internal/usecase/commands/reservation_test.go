//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"court-booking-engine/internal/domain/audit"
	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/pkg/config"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/commands"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("success debits the final price", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		alice := member(user.TierRegular)
		env.fund(t, alice.UserID, 1000)

		got, err := env.reservations.Reserve(ctx, alice, commands.ReserveInput{
			ResourceID: court.ID(),
			Slot:       wednesday(18, 19),
		})
		require.NoError(t, err)

		r := got.Reservation
		assert.Equal(t, reservation.StatusConfirmed, r.Status())
		assert.Equal(t, int64(500), r.Price())
		assert.Equal(t, int64(500), r.BasePrice())
		require.NotNil(t, r.LedgerTxID())
		assert.Equal(t, int64(500), env.balance(t, alice.UserID))
		assert.Contains(t, env.events.Types(), shared.EventReservationConfirmed)
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ReservationsTotal.WithLabelValues("single")))
	})

	t.Run("second booking of the same slot is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		alice, bob := member(user.TierRegular), member(user.TierRegular)
		env.fund(t, alice.UserID, 1000)
		env.fund(t, bob.UserID, 1000)

		_, err := env.reservations.Reserve(ctx, alice, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 20)})
		require.NoError(t, err)

		_, err = env.reservations.Reserve(ctx, bob, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(19, 21)})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrSlotTaken))
		assert.Equal(t, int64(1000), env.balance(t, bob.UserID))
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RejectionsTotal.WithLabelValues("single", "slot_taken")))

		// touching intervals do not overlap
		_, err = env.reservations.Reserve(ctx, bob, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(20, 21)})
		require.NoError(t, err)
	})

	t.Run("insufficient balance leaves nothing behind", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		alice := member(user.TierRegular)
		env.fund(t, alice.UserID, 100)

		_, err := env.reservations.Reserve(ctx, alice, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 19)})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInsufficientBalance))
		assert.Empty(t, env.activeOn(t, court.ID(), wednesday(18, 19).Date()))
		assert.Equal(t, int64(100), env.balance(t, alice.UserID))
	})

	t.Run("membership discount applies before the redeem code", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		vip := member(user.TierVIP)
		env.fund(t, vip.UserID, 1000)
		_, err := env.admin.CreateRedeemCode(ctx, env.adminUser, redeem.NewParams{
			Code:  "summer50",
			Kind:  redeem.DiscountFixed,
			Value: 50,
		})
		require.NoError(t, err)

		got, err := env.reservations.Reserve(ctx, vip, commands.ReserveInput{
			ResourceID:  court.ID(),
			Slot:        wednesday(18, 19),
			RedeemCode:  "SUMMER50",
			QuotedPrice: ptrTo(int64(350)),
		})
		require.NoError(t, err)

		assert.Equal(t, int64(500), got.Price.BasePrice())
		assert.Equal(t, int64(100), got.Price.Discount.MembershipDiscount)
		assert.Equal(t, int64(50), got.Price.Discount.CodeDiscount)
		assert.Equal(t, int64(350), got.Reservation.Price())
		assert.Equal(t, int64(650), env.balance(t, vip.UserID))
	})

	t.Run("stale quote is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		alice := member(user.TierRegular)
		env.fund(t, alice.UserID, 1000)

		_, err := env.reservations.Reserve(ctx, alice, commands.ReserveInput{
			ResourceID:  court.ID(),
			Slot:        wednesday(18, 19),
			QuotedPrice: ptrTo(int64(400)),
		})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrPricingChanged))
		assert.Equal(t, int64(1000), env.balance(t, alice.UserID))
	})

	t.Run("inactive resource", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		_, err := env.admin.UpdateResource(ctx, env.adminUser, court.ID(), commands.UpdateResourceInput{Active: ptrTo(false)})
		require.NoError(t, err)
		alice := member(user.TierRegular)
		env.fund(t, alice.UserID, 1000)

		_, err = env.reservations.Reserve(ctx, alice, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 19)})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrResourceInactive))
	})

	t.Run("unknown resource", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.reservations.Reserve(ctx, member(user.TierRegular), commands.ReserveInput{ResourceID: uuid.New(), Slot: wednesday(18, 19)})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrResourceNotFound))
	})

	t.Run("partial hours are not billable", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		slot, err := reservation.NewTimeSlot(wednesday(18, 19).Date(), 18*60, 18*60+30)
		require.NoError(t, err)

		_, err = env.reservations.Reserve(ctx, member(user.TierRegular), commands.ReserveInput{ResourceID: court.ID(), Slot: slot})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidInterval))
	})

	t.Run("members cannot use overrides", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)

		_, err := env.reservations.Reserve(ctx, member(user.TierRegular), commands.ReserveInput{
			ResourceID: court.ID(),
			Slot:       wednesday(18, 19),
			Override:   &shared.AdminOverride{BypassRestrictions: true},
		})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})

	t.Run("members cannot book for someone else", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)

		_, err := env.reservations.Reserve(ctx, member(user.TierRegular), commands.ReserveInput{
			ResourceID: court.ID(),
			Slot:       wednesday(18, 19),
			OnBehalfOf: ptrTo(uuid.New()),
		})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})

	t.Run("admin bypass books over an existing reservation and is audited", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		alice, bob := member(user.TierRegular), member(user.TierRegular)
		env.fund(t, alice.UserID, 1000)

		_, err := env.reservations.Reserve(ctx, alice, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 19)})
		require.NoError(t, err)

		got, err := env.reservations.Reserve(ctx, env.adminUser, commands.ReserveInput{
			ResourceID: court.ID(),
			Slot:       wednesday(18, 19),
			OnBehalfOf: &bob.UserID,
			Override:   &shared.AdminOverride{BypassRestrictions: true, CustomPoints: ptrTo(int64(200)), Reason: "tournament"},
		})
		require.NoError(t, err)

		assert.True(t, got.Reservation.Bypassed())
		assert.Equal(t, bob.UserID, got.Reservation.UserID())
		assert.Equal(t, int64(200), got.Reservation.Price())
		assert.Equal(t, int64(-200), env.balance(t, bob.UserID))
		assert.Len(t, env.activeOn(t, court.ID(), wednesday(18, 19).Date()), 2)

		log := env.store.AuditLog()
		require.NotEmpty(t, log)
		last := log[len(log)-1]
		assert.Equal(t, audit.ActionBypassReservation, last.Action)
		assert.Equal(t, "tournament", last.Reason)
		assert.Equal(t, env.adminUser.UserID, last.ActorID)
	})

	t.Run("request key replays the first result", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		alice := member(user.TierRegular)
		env.fund(t, alice.UserID, 1000)
		in := commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 19), RequestKey: "req-42"}

		first, err := env.reservations.Reserve(ctx, alice, in)
		require.NoError(t, err)
		second, err := env.reservations.Reserve(ctx, alice, in)
		require.NoError(t, err)

		assert.False(t, first.Replayed)
		assert.True(t, second.Replayed)
		assert.Equal(t, first.Reservation.ID(), second.Reservation.ID())
		assert.Equal(t, int64(500), env.balance(t, alice.UserID))

		spends := 0
		for _, entry := range env.ledgerEntries(t, alice.UserID) {
			if entry.Kind() == ledger.KindSpend {
				spends++
			}
		}
		assert.Equal(t, 1, spends)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("refunds exactly what was charged", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		vip := member(user.TierVIP)
		env.fund(t, vip.UserID, 1000)

		booked, err := env.reservations.Reserve(ctx, vip, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 20)})
		require.NoError(t, err)
		require.Equal(t, int64(800), booked.Reservation.Price())
		require.Equal(t, int64(200), env.balance(t, vip.UserID))

		got, err := env.reservations.Cancel(ctx, vip, booked.Reservation.ID())
		require.NoError(t, err)

		assert.Equal(t, int64(800), got.Refunded)
		assert.Equal(t, reservation.StatusCancelled, got.Reservation.Status())
		assert.Equal(t, int64(1000), env.balance(t, vip.UserID))
		assert.Empty(t, env.activeOn(t, court.ID(), wednesday(18, 20).Date()))
		assert.Contains(t, env.events.Types(), shared.EventReservationCancelled)
	})

	t.Run("second cancel fails and refunds nothing", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		alice := member(user.TierRegular)
		env.fund(t, alice.UserID, 1000)
		booked, err := env.reservations.Reserve(ctx, alice, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 19)})
		require.NoError(t, err)

		_, err = env.reservations.Cancel(ctx, alice, booked.Reservation.ID())
		require.NoError(t, err)
		_, err = env.reservations.Cancel(ctx, alice, booked.Reservation.ID())
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrAlreadyCancelled))
		assert.Equal(t, int64(1000), env.balance(t, alice.UserID))
	})

	t.Run("only the owner or an admin may cancel", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		alice := member(user.TierRegular)
		env.fund(t, alice.UserID, 1000)
		booked, err := env.reservations.Reserve(ctx, alice, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 19)})
		require.NoError(t, err)

		_, err = env.reservations.Cancel(ctx, member(user.TierRegular), booked.Reservation.ID())
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrForbidden))

		got, err := env.reservations.Cancel(ctx, env.adminUser, booked.Reservation.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(500), got.Refunded)
	})

	t.Run("freed slot can be booked again", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		alice, bob := member(user.TierRegular), member(user.TierRegular)
		env.fund(t, alice.UserID, 1000)
		env.fund(t, bob.UserID, 1000)
		booked, err := env.reservations.Reserve(ctx, alice, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 19)})
		require.NoError(t, err)
		_, err = env.reservations.Cancel(ctx, alice, booked.Reservation.ID())
		require.NoError(t, err)

		_, err = env.reservations.Reserve(ctx, bob, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 19)})
		require.NoError(t, err)
	})

	t.Run("redeem use is restored when configured", func(t *testing.T) {
		env := newTestEnv(t, func(c *config.Config) { c.Booking.RefundRestoresRedeemUse = true })
		court := env.seedResource(t, resource.TypeCompetition)
		alice := member(user.TierRegular)
		env.fund(t, alice.UserID, 1000)
		_, err := env.admin.CreateRedeemCode(ctx, env.adminUser, redeem.NewParams{
			Code: "ONCE", Kind: redeem.DiscountFixed, Value: 100, UsageLimit: ptrTo(1),
		})
		require.NoError(t, err)

		booked, err := env.reservations.Reserve(ctx, alice, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 19), RedeemCode: "ONCE"})
		require.NoError(t, err)
		_, err = env.reservations.Cancel(ctx, alice, booked.Reservation.ID())
		require.NoError(t, err)

		_, err = env.reservations.Reserve(ctx, alice, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(19, 20), RedeemCode: "ONCE"})
		require.NoError(t, err)
	})

	t.Run("cancelling later in the day still refunds", func(t *testing.T) {
		env := newTestEnv(t)
		court := env.seedResource(t, resource.TypeCompetition)
		alice := member(user.TierRegular)
		env.fund(t, alice.UserID, 1000)
		booked, err := env.reservations.Reserve(ctx, alice, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 19)})
		require.NoError(t, err)

		env.clock.Add(6 * time.Hour)
		got, err := env.reservations.Cancel(ctx, alice, booked.Reservation.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(500), got.Refunded)
	})
}
