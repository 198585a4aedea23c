//go:build unit || e2e

package builder

import (
	"time"

	"court-booking-engine/internal/domain/reservation"

	"github.com/google/uuid"
)

var Tokyo = mustLoadLocation("Asia/Tokyo")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, 9*60*60)
	}
	return loc
}

// Date returns midnight of the given day in the venue time zone.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, Tokyo)
}

func Slot(date time.Time, startHour, endHour int) reservation.TimeSlot {
	s, err := reservation.NewTimeSlot(date, startHour*60, endHour*60)
	if err != nil {
		panic(err)
	}
	return s
}

type ReservationBuilder struct {
	ResourceID uuid.UUID
	UserID     uuid.UUID
	Slot       reservation.TimeSlot
	Price      int64
	BasePrice  int64
	GroupID    *uuid.UUID
	RequestKey *string
	Confirmed  bool
	LedgerTxID *uuid.UUID
	Now        time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ResourceID: uuid.New(),
		UserID:     uuid.New(),
		Slot:       Slot(Date(2030, time.June, 5), 18, 20),
		Price:      1000,
		BasePrice:  1000,
		Confirmed:  true,
		Now:        Date(2030, time.June, 1),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	r, err := reservation.NewReservation(reservation.NewParams{
		ResourceID: b.ResourceID,
		UserID:     b.UserID,
		Slot:       b.Slot,
		Price:      b.Price,
		BasePrice:  b.BasePrice,
		GroupID:    b.GroupID,
		RequestKey: b.RequestKey,
	}, b.Now)
	if err != nil {
		return nil, err
	}
	if b.Confirmed {
		ledgerTxID := b.LedgerTxID
		if ledgerTxID == nil {
			id := uuid.New()
			ledgerTxID = &id
		}
		if err := r.Confirm(ledgerTxID, b.Now); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (b *ReservationBuilder) MustBuild() *reservation.Reservation {
	r, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return r
}
