//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveSameSlotUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	court := env.seedResource(t, resource.TypeCompetition)

	const callers = 30
	players := make([]user.Identity, callers)
	for i := range players {
		players[i] = member(user.TierRegular)
		env.fund(t, players[i].UserID, 1000)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []uuid.UUID
		taken   int
	)
	for _, p := range players {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.reservations.Reserve(ctx, p, commands.ReserveInput{ResourceID: court.ID(), Slot: wednesday(18, 20)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, p.UserID)
			case errs.Is(err, errs.ErrSlotTaken):
				taken++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, callers-1, taken)

	active := env.activeOn(t, court.ID(), wednesday(18, 20).Date())
	require.Len(t, active, 1)
	assert.Equal(t, winners[0], active[0].UserID())

	// only the winner paid
	for _, p := range players {
		want := int64(1000)
		if p.UserID == winners[0] {
			want -= active[0].Price()
		}
		assert.Equal(t, want, env.balance(t, p.UserID))
	}
}

func TestCrossingFullVenueBookingsDoNotDeadlock(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	hallA := env.seedResource(t, resource.TypeCompetition)
	hallB := env.seedResource(t, resource.TypeCompetition)
	slot := wednesday(18, 20)

	const rounds = 10
	orders := [][]uuid.UUID{
		{hallA.ID(), hallB.ID()},
		{hallB.ID(), hallA.ID()},
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  int
	)
	for i := range 2 * rounds {
		p := member(user.TierRegular)
		env.fund(t, p.UserID, 10_000)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.fullVenues.ReserveFullVenue(ctx, p, commands.FullVenueInput{
				ResourceIDs: orders[i%2],
				Slot:        slot,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errs.Is(err, errs.ErrPartialFailure) && errs.Is(err, errs.ErrSlotTaken):
				failures++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("full venue bookings did not finish, lock order is not consistent")
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 2*rounds-1, failures)
	assert.Len(t, env.activeOn(t, hallA.ID(), slot.Date()), 1)
	assert.Len(t, env.activeOn(t, hallB.ID(), slot.Date()), 1)
}
