package reservation

import (
	"time"

	"court-booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type Reservation struct {
	id         uuid.UUID
	resourceID uuid.UUID
	userID     uuid.UUID
	timeSlot   TimeSlot
	status     Status
	price      int64
	basePrice  int64
	groupID    *uuid.UUID
	ledgerTxID *uuid.UUID
	redeemCode *string
	requestKey *string
	bypassed   bool
	createdAt  time.Time
	updatedAt  time.Time
}

type NewParams struct {
	ResourceID uuid.UUID
	UserID     uuid.UUID
	Slot       TimeSlot
	Price      int64
	BasePrice  int64
	GroupID    *uuid.UUID
	RedeemCode *string
	RequestKey *string
	Bypassed   bool
}

// NewReservation creates a pending reservation. It becomes confirmed once its debit is recorded.
func NewReservation(p NewParams, now time.Time) (*Reservation, error) {
	if p.ResourceID == uuid.Nil || p.UserID == uuid.Nil {
		return nil, errs.Wrap(errs.ErrDomainValidation, "resource and user are required")
	}
	if p.Slot.IsZero() {
		return nil, errs.Wrap(errs.ErrInvalidInterval, "time slot is required")
	}
	if p.Price < 0 || p.BasePrice < 0 {
		return nil, errs.Wrap(errs.ErrDomainValidation, "price cannot be negative")
	}

	return &Reservation{
		id:         uuid.New(),
		resourceID: p.ResourceID,
		userID:     p.UserID,
		timeSlot:   p.Slot,
		status:     StatusPending,
		price:      p.Price,
		basePrice:  p.BasePrice,
		groupID:    p.GroupID,
		redeemCode: p.RedeemCode,
		requestKey: p.RequestKey,
		bypassed:   p.Bypassed,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructReservation(
	id, resourceID, userID uuid.UUID,
	timeSlot TimeSlot,
	status Status,
	price, basePrice int64,
	groupID, ledgerTxID *uuid.UUID,
	redeemCode, requestKey *string,
	bypassed bool,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		resourceID: resourceID,
		userID:     userID,
		timeSlot:   timeSlot,
		status:     status,
		price:      price,
		basePrice:  basePrice,
		groupID:    groupID,
		ledgerTxID: ledgerTxID,
		redeemCode: redeemCode,
		requestKey: requestKey,
		bypassed:   bypassed,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Confirm records the debit that paid for the reservation. ledgerTxID is nil for free bookings
// and for members of a full venue booking, whose debit is held by the group.
func (r *Reservation) Confirm(ledgerTxID *uuid.UUID, now time.Time) error {
	if r.status != StatusPending {
		return errs.Wrapf(errs.ErrInvalidStatusTransition, "cannot confirm %s reservation", r.status)
	}
	r.status = StatusConfirmed
	r.ledgerTxID = ledgerTxID
	r.updatedAt = now
	return nil
}

func (r *Reservation) Cancel(now time.Time) error {
	switch r.status {
	case StatusCancelled:
		return errs.ErrAlreadyCancelled
	case StatusPending, StatusConfirmed:
		r.status = StatusCancelled
		r.updatedAt = now
		return nil
	default:
		return errs.Wrapf(errs.ErrInvalidStatusTransition, "cannot cancel %s reservation", r.status)
	}
}

// RefundAmount is what a cancellation credits back: exactly what was debited.
func (r *Reservation) RefundAmount() int64 {
	if r.status != StatusConfirmed || r.ledgerTxID == nil {
		return 0
	}
	return r.price
}

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

func (r *Reservation) IsGroupMember() bool {
	return r.groupID != nil
}

func (r *Reservation) HasExpired(now time.Time) bool {
	return now.After(r.timeSlot.End())
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) ResourceID() uuid.UUID  { return r.resourceID }
func (r *Reservation) UserID() uuid.UUID      { return r.userID }
func (r *Reservation) TimeSlot() TimeSlot     { return r.timeSlot }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) Price() int64           { return r.price }
func (r *Reservation) BasePrice() int64       { return r.basePrice }
func (r *Reservation) GroupID() *uuid.UUID    { return r.groupID }
func (r *Reservation) LedgerTxID() *uuid.UUID { return r.ledgerTxID }
func (r *Reservation) RedeemCode() *string    { return r.redeemCode }
func (r *Reservation) RequestKey() *string    { return r.requestKey }
func (r *Reservation) Bypassed() bool         { return r.bypassed }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }
