package fullvenue

import (
	"bytes"
	"slices"
	"time"

	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusFailed:
		return true
	default:
		return false
	}
}

// Transaction groups reservations on several resources for the same slot. Members are
// confirmed together under one debit or not at all.
type Transaction struct {
	id             uuid.UUID
	userID         uuid.UUID
	resourceIDs    []uuid.UUID
	reservationIDs []uuid.UUID
	slot           reservation.TimeSlot
	basePrice      int64
	price          int64
	status         Status
	ledgerTxID     *uuid.UUID
	redeemCode     *string
	requestKey     *string
	bypassed       bool
	failureReason  string
	createdAt      time.Time
	updatedAt      time.Time
}

type NewParams struct {
	UserID      uuid.UUID
	ResourceIDs []uuid.UUID
	Slot        reservation.TimeSlot
	BasePrice   int64
	Price       int64
	RedeemCode  *string
	RequestKey  *string
	Bypassed    bool
}

// SortResourceIDs returns the distinct ids in the order locks must be taken.
func SortResourceIDs(ids []uuid.UUID) []uuid.UUID {
	out := slices.Clone(ids)
	slices.SortFunc(out, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return slices.Compact(out)
}

func NewTransaction(p NewParams, now time.Time) (*Transaction, error) {
	ids := SortResourceIDs(p.ResourceIDs)
	if len(ids) < 2 {
		return nil, errs.Wrap(errs.ErrDomainValidation, "a full venue booking needs at least two resources")
	}
	if p.UserID == uuid.Nil {
		return nil, errs.Wrap(errs.ErrDomainValidation, "user is required")
	}
	if p.Slot.IsZero() {
		return nil, errs.Wrap(errs.ErrInvalidInterval, "time slot is required")
	}
	if p.Price < 0 || p.BasePrice < 0 {
		return nil, errs.Wrap(errs.ErrDomainValidation, "price cannot be negative")
	}
	return &Transaction{
		id:          uuid.New(),
		userID:      p.UserID,
		resourceIDs: ids,
		slot:        p.Slot,
		basePrice:   p.BasePrice,
		price:       p.Price,
		status:      StatusPending,
		redeemCode:  p.RedeemCode,
		requestKey:  p.RequestKey,
		bypassed:    p.Bypassed,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// NewFailedAttempt records an attempt that was rolled back. It owns no reservations.
func NewFailedAttempt(p NewParams, reason string, now time.Time) *Transaction {
	return &Transaction{
		id:            uuid.New(),
		userID:        p.UserID,
		resourceIDs:   SortResourceIDs(p.ResourceIDs),
		slot:          p.Slot,
		basePrice:     p.BasePrice,
		price:         p.Price,
		status:        StatusFailed,
		bypassed:      p.Bypassed,
		failureReason: reason,
		createdAt:     now,
		updatedAt:     now,
	}
}

func ReconstructTransaction(
	id, userID uuid.UUID,
	resourceIDs, reservationIDs []uuid.UUID,
	slot reservation.TimeSlot,
	basePrice, price int64,
	status Status,
	ledgerTxID *uuid.UUID,
	redeemCode, requestKey *string,
	bypassed bool,
	failureReason string,
	createdAt, updatedAt time.Time,
) *Transaction {
	return &Transaction{
		id:             id,
		userID:         userID,
		resourceIDs:    resourceIDs,
		reservationIDs: reservationIDs,
		slot:           slot,
		basePrice:      basePrice,
		price:          price,
		status:         status,
		ledgerTxID:     ledgerTxID,
		redeemCode:     redeemCode,
		requestKey:     requestKey,
		bypassed:       bypassed,
		failureReason:  failureReason,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (t *Transaction) AddMember(r *reservation.Reservation) error {
	if t.status != StatusPending {
		return errs.Wrapf(errs.ErrInvalidStatusTransition, "cannot add members to %s booking", t.status)
	}
	if r.GroupID() == nil || *r.GroupID() != t.id {
		return errs.Wrap(errs.ErrDomainValidation, "reservation does not belong to this booking")
	}
	if !slices.Contains(t.resourceIDs, r.ResourceID()) {
		return errs.Wrap(errs.ErrDomainValidation, "reservation resource is not part of this booking")
	}
	t.reservationIDs = append(t.reservationIDs, r.ID())
	return nil
}

func (t *Transaction) Confirm(ledgerTxID *uuid.UUID, now time.Time) error {
	if t.status != StatusPending {
		return errs.Wrapf(errs.ErrInvalidStatusTransition, "cannot confirm %s booking", t.status)
	}
	if len(t.reservationIDs) != len(t.resourceIDs) {
		return errs.Wrap(errs.ErrPartialFailure, "not every resource has a reservation")
	}
	t.status = StatusConfirmed
	t.ledgerTxID = ledgerTxID
	t.updatedAt = now
	return nil
}

func (t *Transaction) Cancel(now time.Time) error {
	switch t.status {
	case StatusCancelled:
		return errs.ErrAlreadyCancelled
	case StatusPending, StatusConfirmed:
		t.status = StatusCancelled
		t.updatedAt = now
		return nil
	default:
		return errs.Wrapf(errs.ErrInvalidStatusTransition, "cannot cancel %s booking", t.status)
	}
}

func (t *Transaction) RefundAmount() int64 {
	if t.status != StatusConfirmed || t.ledgerTxID == nil {
		return 0
	}
	return t.price
}

func (t *Transaction) ID() uuid.UUID               { return t.id }
func (t *Transaction) UserID() uuid.UUID           { return t.userID }
func (t *Transaction) ResourceIDs() []uuid.UUID    { return t.resourceIDs }
func (t *Transaction) ReservationIDs() []uuid.UUID { return t.reservationIDs }
func (t *Transaction) Slot() reservation.TimeSlot  { return t.slot }
func (t *Transaction) BasePrice() int64            { return t.basePrice }
func (t *Transaction) Price() int64                { return t.price }
func (t *Transaction) Status() Status              { return t.status }
func (t *Transaction) LedgerTxID() *uuid.UUID      { return t.ledgerTxID }
func (t *Transaction) RedeemCode() *string         { return t.redeemCode }
func (t *Transaction) RequestKey() *string         { return t.requestKey }
func (t *Transaction) Bypassed() bool              { return t.bypassed }
func (t *Transaction) FailureReason() string       { return t.failureReason }
func (t *Transaction) CreatedAt() time.Time        { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time        { return t.updatedAt }
