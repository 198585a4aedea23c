//go:build unit

package memstore_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"court-booking-engine/internal/domain/audit"
	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/infra/memstore"
	"court-booking-engine/internal/usecase/shared"
	"court-booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinCommitsOnSuccessOnly(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	res := builder.NewResourceBuilder().MustBuild()

	failure := errors.New("boom")
	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		require.NoError(t, tx.Resources().Create(ctx, res))
		// staged writes are visible inside the same unit of work
		_, err := tx.Resources().FindByID(ctx, res.ID())
		require.NoError(t, err)
		return failure
	})
	require.ErrorIs(t, err, failure)

	err = store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Resources().FindByID(ctx, res.ID())
		return err
	})
	assert.True(t, infra.IsKind(err, infra.KindNotFound))

	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Create(ctx, res)
	}))
	require.NoError(t, store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		got, err := tx.Resources().FindByID(ctx, res.ID())
		require.NoError(t, err)
		assert.Equal(t, res.Name(), got.Name())
		return nil
	}))
}

func TestWithinRollsBackOnCancelledContext(t *testing.T) {
	store := memstore.New()
	res := builder.NewResourceBuilder().MustBuild()

	ctx, cancel := context.WithCancel(context.Background())
	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		require.NoError(t, tx.Resources().Create(ctx, res))
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	err = store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Resources().FindByID(ctx, res.ID())
		return err
	})
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	err := store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Create(ctx, builder.NewResourceBuilder().MustBuild())
	})
	assert.True(t, infra.IsKind(err, infra.KindReadOnly))

	err = store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Locks().LockAccount(ctx, uuid.New())
	})
	assert.True(t, infra.IsKind(err, infra.KindReadOnly))
}

func TestReturnedEntitiesAreCopies(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	res := builder.NewResourceBuilder().MustBuild()
	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Create(ctx, res)
	}))

	res.SetActive(false, time.Now())

	require.NoError(t, store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		got, err := tx.Resources().FindByID(ctx, res.ID())
		require.NoError(t, err)
		assert.True(t, got.IsActive())
		return nil
	}))
}

func TestReservationRequestKeyIsUniquePerUser(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	key := "req-1"
	userID := uuid.New()

	first := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.UserID = userID
		b.RequestKey = &key
	}).MustBuild()
	second := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.UserID = userID
		b.RequestKey = &key
	}).MustBuild()
	otherUser := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.RequestKey = &key
	}).MustBuild()

	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		require.NoError(t, tx.Reservations().Create(ctx, first))
		require.NoError(t, tx.Reservations().Create(ctx, otherUser))
		return tx.Reservations().Create(ctx, second)
	})
	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
}

func TestListByUserPagesNewestFirst(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	userID := uuid.New()
	base := builder.Date(2030, time.June, 1)

	var created []*reservation.Reservation
	for i := range 5 {
		r := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.UserID = userID
			b.Now = base.Add(time.Duration(i) * time.Minute)
		}).MustBuild()
		created = append(created, r)
	}
	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, r := range created {
			if err := tx.Reservations().Create(ctx, r); err != nil {
				return err
			}
		}
		return nil
	}))

	var firstPage, secondPage []*reservation.Reservation
	require.NoError(t, store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		firstPage, err = tx.Reservations().ListByUser(ctx, userID, shared.Page{Limit: 3})
		if err != nil {
			return err
		}
		last := firstPage[len(firstPage)-1]
		secondPage, err = tx.Reservations().ListByUser(ctx, userID, shared.Page{
			AfterCreatedAt: last.CreatedAt(),
			AfterID:        last.ID(),
			Limit:          3,
		})
		return err
	}))

	require.Len(t, firstPage, 3)
	require.Len(t, secondPage, 2)
	assert.Equal(t, created[4].ID(), firstPage[0].ID())
	assert.Equal(t, created[2].ID(), firstPage[2].ID())
	assert.Equal(t, created[1].ID(), secondPage[0].ID())
	assert.Equal(t, created[0].ID(), secondPage[1].ID())
}

func TestLedgerReferenceIsUniquePerKind(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	now := builder.Date(2030, time.June, 1)
	acc := ledger.NewAccount(uuid.New(), now)

	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		credit, err := ledger.Credit(acc, 1000, ledger.KindRecharge, "pay-1", "", now)
		require.NoError(t, err)
		require.NoError(t, tx.Ledger().SaveAccount(ctx, acc))
		require.NoError(t, tx.Ledger().CreateTransaction(ctx, credit))

		again, err := ledger.Credit(acc, 1000, ledger.KindRecharge, "pay-1", "", now)
		require.NoError(t, err)
		return tx.Ledger().CreateTransaction(ctx, again)
	})
	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
}

func TestKeyedLocksSerializeWriters(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	userID := uuid.New()
	now := builder.Date(2030, time.June, 1)

	const workers = 20
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
				if err := tx.Locks().LockAccount(ctx, userID); err != nil {
					return err
				}
				acc, err := tx.Ledger().FindAccount(ctx, userID)
				if infra.IsKind(err, infra.KindNotFound) {
					acc, err = ledger.NewAccount(userID, now), nil
				}
				if err != nil {
					return err
				}
				entry, err := ledger.Credit(acc, 10, ledger.KindRefund, uuid.NewString(), "", now)
				if err != nil {
					return err
				}
				if err := tx.Ledger().SaveAccount(ctx, acc); err != nil {
					return err
				}
				return tx.Ledger().CreateTransaction(ctx, entry)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.NoError(t, store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		acc, err := tx.Ledger().FindAccount(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(10*workers), acc.Balance())
		return nil
	}))
}

func TestLockIsReentrantAndHonoursContext(t *testing.T) {
	store := memstore.New()
	resourceID := uuid.New()
	date := builder.Date(2030, time.June, 5)

	held := make(chan struct{})
	release := make(chan struct{})
	var done atomic.Bool
	go func() {
		_ = store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			assert.NoError(t, tx.Locks().LockResourceDay(ctx, resourceID, date))
			assert.NoError(t, tx.Locks().LockResourceDay(ctx, resourceID, date))
			close(held)
			<-release
			return nil
		})
		done.Store(true)
	}()
	<-held

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Locks().LockResourceDay(ctx, resourceID, date)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.Eventually(t, done.Load, time.Second, 10*time.Millisecond)
	require.NoError(t, store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Locks().LockResourceDay(ctx, resourceID, date)
	}))
}

func TestLockSlotsAreDroppedWhenIdle(t *testing.T) {
	store := memstore.New()
	date := builder.Date(2030, time.June, 5)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resourceID := uuid.New()
			if i%2 == 0 {
				resourceID = uuid.Nil
			}
			err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
				if err := tx.Locks().LockResourceDay(ctx, resourceID, date); err != nil {
					return err
				}
				return tx.Locks().LockAccount(ctx, uuid.New())
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Zero(t, memstore.LockSlots(store))

	// a waiter that gives up leaves nothing behind either
	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			assert.NoError(t, tx.Locks().LockResourceDay(ctx, uuid.Nil, date))
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Locks().LockResourceDay(ctx, uuid.Nil, date)
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, memstore.LockSlots(store))

	close(release)
	require.Eventually(t, func() bool { return memstore.LockSlots(store) == 0 }, time.Second, 5*time.Millisecond)
}

func TestAuditLogKeepsCommittedRecords(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	actor := uuid.New()
	now := builder.Date(2030, time.June, 1)

	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Audit().Append(ctx, audit.NewRecord(actor, audit.ActionHolidayAdd, "2030-06-05", "festival", nil, now))
	}))
	_ = store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_ = tx.Audit().Append(ctx, audit.NewRecord(actor, audit.ActionHolidayRemove, "2030-06-05", "", nil, now))
		return errors.New("rolled back")
	})

	log := store.AuditLog()
	require.Len(t, log, 1)
	assert.Equal(t, audit.ActionHolidayAdd, log[0].Action)
}
