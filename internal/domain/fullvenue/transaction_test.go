//go:build unit

package fullvenue_test

import (
	"testing"
	"time"

	"court-booking-engine/internal/domain/fullvenue"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = builder.Date(2030, time.June, 1)

func params(ids ...uuid.UUID) fullvenue.NewParams {
	return fullvenue.NewParams{
		UserID:      uuid.New(),
		ResourceIDs: ids,
		Slot:        builder.Slot(builder.Date(2030, time.June, 5), 18, 20),
		BasePrice:   2000,
		Price:       1800,
	}
}

func member(t *testing.T, tx *fullvenue.Transaction, resourceID uuid.UUID) *reservation.Reservation {
	t.Helper()
	groupID := tx.ID()
	return builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.ResourceID = resourceID
		b.UserID = tx.UserID()
		b.GroupID = &groupID
		b.Confirmed = false
	}).MustBuild()
}

func TestSortResourceIDs(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	c := uuid.MustParse("00000000-0000-0000-0000-000000000003")

	assert.Equal(t, []uuid.UUID{a, b, c}, fullvenue.SortResourceIDs([]uuid.UUID{c, a, b, a}))
}

func TestNewTransaction(t *testing.T) {
	t.Run("needs two distinct resources", func(t *testing.T) {
		id := uuid.New()
		_, err := fullvenue.NewTransaction(params(id, id), now)
		require.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("starts pending with sorted resources", func(t *testing.T) {
		a, b := uuid.New(), uuid.New()
		tx, err := fullvenue.NewTransaction(params(a, b), now)
		require.NoError(t, err)

		assert.Equal(t, fullvenue.StatusPending, tx.Status())
		assert.Equal(t, fullvenue.SortResourceIDs([]uuid.UUID{a, b}), tx.ResourceIDs())
	})
}

func TestTransactionLifecycle(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	t.Run("confirm requires every member", func(t *testing.T) {
		tx, err := fullvenue.NewTransaction(params(a, b), now)
		require.NoError(t, err)
		require.NoError(t, tx.AddMember(member(t, tx, a)))

		err = tx.Confirm(nil, now)
		require.ErrorIs(t, err, errs.ErrPartialFailure)

		require.NoError(t, tx.AddMember(member(t, tx, b)))
		ledgerTxID := uuid.New()
		require.NoError(t, tx.Confirm(&ledgerTxID, now))
		assert.Equal(t, fullvenue.StatusConfirmed, tx.Status())
		assert.Len(t, tx.ReservationIDs(), 2)
		assert.Equal(t, int64(1800), tx.RefundAmount())

		require.NoError(t, tx.Cancel(now))
		assert.Zero(t, tx.RefundAmount())
		require.ErrorIs(t, tx.Cancel(now), errs.ErrAlreadyCancelled)
	})

	t.Run("members must belong", func(t *testing.T) {
		tx, err := fullvenue.NewTransaction(params(a, b), now)
		require.NoError(t, err)

		stranger := builder.NewReservationBuilder().With(func(rb *builder.ReservationBuilder) { rb.Confirmed = false }).MustBuild()
		require.ErrorIs(t, tx.AddMember(stranger), errs.ErrDomainValidation)

		require.ErrorIs(t, tx.AddMember(member(t, tx, uuid.New())), errs.ErrDomainValidation)
	})

	t.Run("failed attempt is terminal", func(t *testing.T) {
		failed := fullvenue.NewFailedAttempt(params(a, b), "slot taken", now)

		assert.Equal(t, fullvenue.StatusFailed, failed.Status())
		assert.Equal(t, "slot taken", failed.FailureReason())
		require.ErrorIs(t, failed.Cancel(now), errs.ErrInvalidStatusTransition)
		assert.Zero(t, failed.RefundAmount())
	})
}
