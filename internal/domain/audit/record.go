package audit

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionBypassReservation  Action = "reservation.bypass"
	ActionBypassFullVenue    Action = "fullvenue.bypass"
	ActionLedgerAdjust       Action = "ledger.adjust"
	ActionRechargeStatus     Action = "ledger.recharge_status"
	ActionResourceCreate     Action = "resource.create"
	ActionResourceUpdate     Action = "resource.update"
	ActionHolidayAdd         Action = "tariff.holiday_add"
	ActionHolidayRemove      Action = "tariff.holiday_remove"
	ActionWeekendPolicy      Action = "tariff.weekend_policy"
	ActionRateUpdate         Action = "tariff.rate_update"
	ActionRedeemCodeCreate   Action = "redeem_code.create"
	ActionRedeemCodeDisabled Action = "redeem_code.deactivate"
)

// Record is an append-only trace of a privileged action.
type Record struct {
	ID        uuid.UUID
	ActorID   uuid.UUID
	Action    Action
	TargetID  string
	Reason    string
	Detail    map[string]any
	CreatedAt time.Time
}

func NewRecord(actorID uuid.UUID, action Action, targetID, reason string, detail map[string]any, now time.Time) Record {
	return Record{
		ID:        uuid.New(),
		ActorID:   actorID,
		Action:    action,
		TargetID:  targetID,
		Reason:    reason,
		Detail:    detail,
		CreatedAt: now,
	}
}
