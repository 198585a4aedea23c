//go:build unit || e2e

package builder

import (
	"time"

	"court-booking-engine/internal/domain/fullvenue"
	"court-booking-engine/internal/domain/reservation"

	"github.com/google/uuid"
)

type FullVenueBuilder struct {
	UserID      uuid.UUID
	ResourceIDs []uuid.UUID
	Slot        reservation.TimeSlot
	MemberPrice int64
	Confirmed   bool
	Now         time.Time
}

func NewFullVenueBuilder() *FullVenueBuilder {
	return &FullVenueBuilder{
		UserID:      uuid.New(),
		ResourceIDs: []uuid.UUID{uuid.New(), uuid.New()},
		Slot:        Slot(Date(2030, time.June, 5), 18, 20),
		MemberPrice: 1000,
		Confirmed:   true,
		Now:         Date(2030, time.June, 1),
	}
}

func (b *FullVenueBuilder) With(mutate func(*FullVenueBuilder)) *FullVenueBuilder {
	mutate(b)
	return b
}

// BuildDomain returns the group and one member reservation per resource.
func (b *FullVenueBuilder) BuildDomain() (*fullvenue.Transaction, []*reservation.Reservation, error) {
	total := b.MemberPrice * int64(len(b.ResourceIDs))
	group, err := fullvenue.NewTransaction(fullvenue.NewParams{
		UserID:      b.UserID,
		ResourceIDs: b.ResourceIDs,
		Slot:        b.Slot,
		BasePrice:   total,
		Price:       total,
	}, b.Now)
	if err != nil {
		return nil, nil, err
	}

	groupID := group.ID()
	members := make([]*reservation.Reservation, 0, len(b.ResourceIDs))
	for _, resourceID := range group.ResourceIDs() {
		member, err := NewReservationBuilder().With(func(rb *ReservationBuilder) {
			rb.ResourceID = resourceID
			rb.UserID = b.UserID
			rb.Slot = b.Slot
			rb.Price = b.MemberPrice
			rb.BasePrice = b.MemberPrice
			rb.GroupID = &groupID
			rb.Confirmed = b.Confirmed
			rb.Now = b.Now
		}).BuildDomain()
		if err != nil {
			return nil, nil, err
		}
		if err := group.AddMember(member); err != nil {
			return nil, nil, err
		}
		members = append(members, member)
	}

	if b.Confirmed {
		ledgerTxID := uuid.New()
		if err := group.Confirm(&ledgerTxID, b.Now); err != nil {
			return nil, nil, err
		}
	}
	return group, members, nil
}

func (b *FullVenueBuilder) MustBuild() (*fullvenue.Transaction, []*reservation.Reservation) {
	group, members, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return group, members
}
