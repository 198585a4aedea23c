//go:build unit

package commands_test

import (
	"context"
	"testing"

	"court-booking-engine/internal/domain/fullvenue"
	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/commands"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveFullVenue(t *testing.T) {
	ctx := context.Background()

	venue := func(env *testEnv) []uuid.UUID {
		return []uuid.UUID{
			env.seedResource(t, resource.TypeCompetition).ID(),
			env.seedResource(t, resource.TypeTraining).ID(),
			env.seedResource(t, resource.TypeSolo).ID(),
		}
	}

	t.Run("books every resource under one debit", func(t *testing.T) {
		env := newTestEnv(t)
		ids := venue(env)
		alice := member(user.TierRegular)
		env.fund(t, alice.UserID, 5000)

		// peak weekday: 500 + 400 + 250 per hour
		got, err := env.fullVenues.ReserveFullVenue(ctx, alice, commands.FullVenueInput{
			ResourceIDs: ids,
			Slot:        wednesday(18, 20),
			QuotedTotal: ptrTo(int64(2300)),
		})
		require.NoError(t, err)

		group := got.Transaction
		assert.Equal(t, fullvenue.StatusConfirmed, group.Status())
		assert.Equal(t, int64(2300), group.Price())
		require.NotNil(t, group.LedgerTxID())
		require.Len(t, got.Reservations, 3)

		var sum int64
		for _, r := range got.Reservations {
			assert.Equal(t, reservation.StatusConfirmed, r.Status())
			require.NotNil(t, r.GroupID())
			assert.Equal(t, group.ID(), *r.GroupID())
			sum += r.Price()
		}
		assert.Equal(t, group.Price(), sum)
		assert.Equal(t, int64(2700), env.balance(t, alice.UserID))

		spends := 0
		for _, entry := range env.ledgerEntries(t, alice.UserID) {
			if entry.Kind() == ledger.KindSpend {
				spends++
			}
		}
		assert.Equal(t, 1, spends)
		assert.Contains(t, env.events.Types(), shared.EventFullVenueConfirmed)
	})

	t.Run("one taken slot rolls back everything", func(t *testing.T) {
		env := newTestEnv(t)
		ids := venue(env)
		alice, bob := member(user.TierRegular), member(user.TierRegular)
		env.fund(t, alice.UserID, 5000)
		env.fund(t, bob.UserID, 1000)

		_, err := env.reservations.Reserve(ctx, bob, commands.ReserveInput{ResourceID: ids[1], Slot: wednesday(19, 20)})
		require.NoError(t, err)

		_, err = env.fullVenues.ReserveFullVenue(ctx, alice, commands.FullVenueInput{ResourceIDs: ids, Slot: wednesday(18, 20)})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrPartialFailure))
		assert.True(t, errs.Is(err, errs.ErrSlotTaken))

		date := wednesday(18, 20).Date()
		assert.Empty(t, env.activeOn(t, ids[0], date))
		assert.Len(t, env.activeOn(t, ids[1], date), 1)
		assert.Empty(t, env.activeOn(t, ids[2], date))
		assert.Equal(t, int64(5000), env.balance(t, alice.UserID))
		assert.Len(t, env.ledgerEntries(t, alice.UserID), 1, "only the seed recharge")
	})

	t.Run("inactive member fails the whole booking", func(t *testing.T) {
		env := newTestEnv(t)
		ids := venue(env)
		_, err := env.admin.UpdateResource(ctx, env.adminUser, ids[2], commands.UpdateResourceInput{Active: ptrTo(false)})
		require.NoError(t, err)
		alice := member(user.TierRegular)
		env.fund(t, alice.UserID, 5000)

		_, err = env.fullVenues.ReserveFullVenue(ctx, alice, commands.FullVenueInput{ResourceIDs: ids, Slot: wednesday(18, 20)})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrPartialFailure))
		assert.True(t, errs.Is(err, errs.ErrResourceInactive))
		assert.Equal(t, int64(5000), env.balance(t, alice.UserID))
	})

	t.Run("needs two distinct resources", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.seedResource(t, resource.TypeCompetition).ID()

		_, err := env.fullVenues.ReserveFullVenue(ctx, member(user.TierRegular), commands.FullVenueInput{
			ResourceIDs: []uuid.UUID{id, id},
			Slot:        wednesday(18, 20),
		})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})

	t.Run("request key replays the group", func(t *testing.T) {
		env := newTestEnv(t)
		ids := venue(env)
		alice := member(user.TierRegular)
		env.fund(t, alice.UserID, 5000)
		in := commands.FullVenueInput{ResourceIDs: ids, Slot: wednesday(18, 20), RequestKey: "venue-1"}

		first, err := env.fullVenues.ReserveFullVenue(ctx, alice, in)
		require.NoError(t, err)
		second, err := env.fullVenues.ReserveFullVenue(ctx, alice, in)
		require.NoError(t, err)

		assert.True(t, second.Replayed)
		assert.Equal(t, first.Transaction.ID(), second.Transaction.ID())
		assert.Len(t, second.Reservations, 3)
		assert.Equal(t, int64(2700), env.balance(t, alice.UserID))
	})

	t.Run("cancelling through a member cancels the group and refunds the total", func(t *testing.T) {
		env := newTestEnv(t)
		ids := venue(env)
		alice := member(user.TierRegular)
		env.fund(t, alice.UserID, 5000)
		booked, err := env.fullVenues.ReserveFullVenue(ctx, alice, commands.FullVenueInput{ResourceIDs: ids, Slot: wednesday(18, 20)})
		require.NoError(t, err)

		got, err := env.reservations.Cancel(ctx, alice, booked.Reservations[0].ID())
		require.NoError(t, err)

		require.NotNil(t, got.FullVenue)
		assert.Equal(t, int64(2300), got.Refunded)
		assert.Equal(t, fullvenue.StatusCancelled, got.FullVenue.Transaction.Status())
		for _, r := range got.FullVenue.Reservations {
			assert.Equal(t, reservation.StatusCancelled, r.Status())
		}
		for _, id := range ids {
			assert.Empty(t, env.activeOn(t, id, wednesday(18, 20).Date()))
		}
		assert.Equal(t, int64(5000), env.balance(t, alice.UserID))
		assert.Contains(t, env.events.Types(), shared.EventFullVenueCancelled)

		_, err = env.fullVenues.CancelFullVenue(ctx, alice, booked.Transaction.ID())
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrAlreadyCancelled))
	})
}
