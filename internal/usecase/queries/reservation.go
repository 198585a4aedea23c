package queries

import (
	"context"
	"time"

	"court-booking-engine/internal/domain/fullvenue"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationPage struct {
	Items      []*reservation.Reservation
	NextCursor string
}

type FullVenueView struct {
	Transaction  *fullvenue.Transaction
	Reservations []*reservation.Reservation
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actor user.Identity, id uuid.UUID) (*reservation.Reservation, error)
	ListMine(ctx context.Context, actor user.Identity, after string, limit int) (*ReservationPage, error)
	// ListByResourceDate is a staff view of every reservation on a resource and date.
	ListByResourceDate(ctx context.Context, actor user.Identity, resourceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error)
	GetFullVenue(ctx context.Context, actor user.Identity, id uuid.UUID) (*FullVenueView, error)
}

type reservationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReservationQueries(uow shared.UnitOfWork) ReservationQueries {
	return &reservationQueriesImpl{uow: uow}
}

func canRead(actor user.Identity, ownerID uuid.UUID) bool {
	return actor.UserID == ownerID || actor.Role.IsStaff()
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor user.Identity, id uuid.UUID) (*reservation.Reservation, error) {
	var out *reservation.Reservation
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(errs.ErrReservationNotFound, "reservation %s", id)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		// Other users' reservations are reported as missing.
		if !canRead(actor, r.UserID()) {
			return errs.Wrapf(errs.ErrReservationNotFound, "reservation %s", id)
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (q *reservationQueriesImpl) ListMine(ctx context.Context, actor user.Identity, after string, limit int) (*ReservationPage, error) {
	page, err := PageFrom(after, limit)
	if err != nil {
		return nil, err
	}
	var out *ReservationPage
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		items, err := tx.Reservations().ListByUser(ctx, actor.UserID, page)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		items, next := trimPage(items, page, func(r *reservation.Reservation) (time.Time, uuid.UUID) {
			return r.CreatedAt(), r.ID()
		})
		out = &ReservationPage{Items: items, NextCursor: next}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (q *reservationQueriesImpl) ListByResourceDate(ctx context.Context, actor user.Identity, resourceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error) {
	if !actor.Role.IsStaff() {
		return nil, errs.Wrap(errs.ErrForbidden, "staff role required")
	}
	var out []*reservation.Reservation
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := shared.LoadResource(ctx, tx, resourceID); err != nil {
			return err
		}
		items, err := tx.Reservations().ListByResourceDate(ctx, resourceID, date)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		out = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (q *reservationQueriesImpl) GetFullVenue(ctx context.Context, actor user.Identity, id uuid.UUID) (*FullVenueView, error) {
	var out *FullVenueView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		group, err := tx.FullVenues().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(errs.ErrFullVenueNotFound, "full venue booking %s", id)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !canRead(actor, group.UserID()) {
			return errs.Wrapf(errs.ErrFullVenueNotFound, "full venue booking %s", id)
		}
		members, err := tx.Reservations().ListByGroup(ctx, id)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		out = &FullVenueView{Transaction: group, Reservations: members}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
