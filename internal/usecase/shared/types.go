package shared

import (
	"context"
	"time"

	"court-booking-engine/internal/domain/ledger"

	"github.com/google/uuid"
)

// AdminOverride lets an admin skip availability and balance checks and optionally set the price.
// Every use is audited.
type AdminOverride struct {
	BypassRestrictions bool
	CustomPoints       *int64
	Reason             string
}

func (o *AdminOverride) Bypass() bool {
	return o != nil && o.BypassRestrictions
}

func (o *AdminOverride) CustomPrice() *int64 {
	if o == nil {
		return nil
	}
	return o.CustomPoints
}

type EventType string

const (
	EventReservationConfirmed EventType = "reservation.confirmed"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventFullVenueConfirmed   EventType = "fullvenue.confirmed"
	EventFullVenueCancelled   EventType = "fullvenue.cancelled"
	EventRechargeStatus       EventType = "ledger.recharge_status_changed"
)

type Event struct {
	Type        EventType
	AggregateID uuid.UUID
	UserID      uuid.UUID
	Payload     map[string]any
	OccurredAt  time.Time
}

// EventPublisher delivers events after commit. Delivery failures never undo a committed change.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

type BookingMetrics interface {
	ReservationCommitted(kind string, price int64, elapsed time.Duration)
	ReservationRejected(kind, reason string)
	LedgerMoved(kind ledger.Kind, amount int64)
}
