//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"court-booking-engine/internal/domain/discount"
	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/domain/pricing"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/infra/memstore"
	"court-booking-engine/internal/infra/metrics"
	"court-booking-engine/internal/pkg/clock"
	"court-booking-engine/internal/pkg/config"
	"court-booking-engine/internal/usecase/commands"
	"court-booking-engine/internal/usecase/shared"
	"court-booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// Wednesday 2030-06-05, 09:00 in the venue time zone.
var testNow = builder.Date(2030, time.June, 5).Add(9 * time.Hour)

type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev shared.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Types() []shared.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]shared.EventType, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

type testEnv struct {
	store        *memstore.Store
	clock        *clock.MockClock
	events       *recordingPublisher
	metrics      *metrics.BookingMetrics
	reservations commands.ReservationCommands
	fullVenues   commands.FullVenueCommands
	ledger       commands.LedgerCommands
	admin        commands.AdminCommands
	adminUser    user.Identity
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	cfg := config.NewTestConfig()
	for _, m := range mutate {
		m(&cfg)
	}

	policy, err := shared.NewBookingPolicy(cfg.Booking)
	require.NoError(t, err)
	membership, err := discount.NewPolicy(cfg.Membership.Discounts)
	require.NoError(t, err)
	pricer := shared.NewPricer(pricing.NewTariffCalculator(), discount.NewComposer(membership))

	store := memstore.New()
	uow := memstore.NewUoW(store)
	clk := clock.NewMockClock(testNow)
	events := &recordingPublisher{}
	m := metrics.New(prometheus.NewRegistry())

	return &testEnv{
		store:        store,
		clock:        clk,
		events:       events,
		metrics:      m,
		reservations: commands.NewReservationCommands(uow, pricer, policy, events, m, clk),
		fullVenues:   commands.NewFullVenueCommands(uow, pricer, policy, events, m, clk),
		ledger:       commands.NewLedgerCommands(uow, events, m, clk),
		admin:        commands.NewAdminCommands(uow, clk),
		adminUser:    user.Identity{UserID: uuid.New(), Role: user.RoleAdmin, Tier: user.TierRegular},
	}
}

func member(tier user.Tier) user.Identity {
	return user.Identity{UserID: uuid.New(), Role: user.RoleMember, Tier: tier}
}

func (e *testEnv) seedResource(t *testing.T, rt resource.Type) *resource.Resource {
	t.Helper()
	res := builder.NewResourceBuilder().With(func(b *builder.ResourceBuilder) {
		b.ID = uuid.New()
		b.Type = rt
	}).MustBuild()
	require.NoError(t, e.store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Create(ctx, res)
	}))
	return res
}

func (e *testEnv) fund(t *testing.T, userID uuid.UUID, amount int64) {
	t.Helper()
	_, err := e.ledger.Recharge(context.Background(), e.adminUser, commands.RechargeInput{
		UserID:    userID,
		Amount:    amount,
		Reference: "seed-" + uuid.NewString(),
	})
	require.NoError(t, err)
}

func (e *testEnv) balance(t *testing.T, userID uuid.UUID) int64 {
	t.Helper()
	var balance int64
	require.NoError(t, e.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		acc, err := tx.Ledger().FindAccount(ctx, userID)
		if err != nil {
			return err
		}
		balance = acc.Balance()
		return nil
	}))
	return balance
}

func (e *testEnv) activeOn(t *testing.T, resourceID uuid.UUID, date time.Time) []*reservation.Reservation {
	t.Helper()
	var out []*reservation.Reservation
	require.NoError(t, e.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		out, err = tx.Reservations().ListActiveByResourceDate(ctx, resourceID, date)
		return err
	}))
	return out
}

func (e *testEnv) ledgerEntries(t *testing.T, userID uuid.UUID) []*ledger.Transaction {
	t.Helper()
	var out []*ledger.Transaction
	require.NoError(t, e.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		out, err = tx.Ledger().ListTransactions(ctx, userID, shared.Page{})
		return err
	}))
	return out
}

func wednesday(startHour, endHour int) reservation.TimeSlot {
	return builder.Slot(builder.Date(2030, time.June, 5), startHour, endHour)
}

func ptrTo[T any](v T) *T {
	return &v
}
