package converter

import (
	"time"

	"court-booking-engine/internal/domain/fullvenue"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ReservationColumns is the column order of ReservationRow.Targets and ReservationRow.Args.
const ReservationColumns = `id, resource_id, user_id, slot_date, start_minute, end_minute, status,
	price, base_price, group_id, ledger_tx_id, redeem_code, request_key, bypassed, created_at, updated_at`

type ReservationRow struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	UserID      uuid.UUID
	SlotDate    pgtype.Date
	StartMinute int32
	EndMinute   int32
	Status      string
	Price       int64
	BasePrice   int64
	GroupID     pgtype.UUID
	LedgerTxID  pgtype.UUID
	RedeemCode  pgtype.Text
	RequestKey  pgtype.Text
	Bypassed    bool
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

func (r *ReservationRow) Targets() []any {
	return []any{
		&r.ID, &r.ResourceID, &r.UserID, &r.SlotDate, &r.StartMinute, &r.EndMinute, &r.Status,
		&r.Price, &r.BasePrice, &r.GroupID, &r.LedgerTxID, &r.RedeemCode, &r.RequestKey, &r.Bypassed,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *ReservationRow) Args() []any {
	return []any{
		r.ID, r.ResourceID, r.UserID, r.SlotDate, r.StartMinute, r.EndMinute, r.Status,
		r.Price, r.BasePrice, r.GroupID, r.LedgerTxID, r.RedeemCode, r.RequestKey, r.Bypassed,
		r.CreatedAt, r.UpdatedAt,
	}
}

func ReservationToRow(res *reservation.Reservation) ReservationRow {
	slot := res.TimeSlot()
	return ReservationRow{
		ID:         res.ID(),
		ResourceID: res.ResourceID(),
		UserID:     res.UserID(),
		SlotDate:   pgconv.DateToPgtype(slot.Date()),
		// #nosec G115 -- minutes of a day
		StartMinute: int32(slot.StartMinute()),
		// #nosec G115 -- minutes of a day
		EndMinute:  int32(slot.EndMinute()),
		Status:     res.Status().String(),
		Price:      res.Price(),
		BasePrice:  res.BasePrice(),
		GroupID:    pgconv.UUIDPtrToPgtype(res.GroupID()),
		LedgerTxID: pgconv.UUIDPtrToPgtype(res.LedgerTxID()),
		RedeemCode: pgconv.StringPtrToPgtype(res.RedeemCode()),
		RequestKey: pgconv.StringPtrToPgtype(res.RequestKey()),
		Bypassed:   res.Bypassed(),
		CreatedAt:  pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:  pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

// ReservationFromRow rebuilds the entity with its slot date in the venue time zone.
func ReservationFromRow(row ReservationRow, loc *time.Location) (*reservation.Reservation, error) {
	slot, err := slotFromColumns(row.SlotDate, row.StartMinute, row.EndMinute, loc)
	if err != nil {
		return nil, err
	}
	status := reservation.Status(row.Status)
	if !status.IsValid() {
		return nil, errs.Newf("reservation %s has unknown status %q", row.ID, row.Status)
	}
	return reservation.ReconstructReservation(
		row.ID, row.ResourceID, row.UserID,
		slot,
		status,
		row.Price, row.BasePrice,
		pgconv.UUIDPtrFromPgtype(row.GroupID), pgconv.UUIDPtrFromPgtype(row.LedgerTxID),
		pgconv.StringPtrFromPgtype(row.RedeemCode), pgconv.StringPtrFromPgtype(row.RequestKey),
		row.Bypassed,
		pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

const FullVenueColumns = `id, user_id, resource_ids, reservation_ids, slot_date, start_minute, end_minute,
	base_price, price, status, ledger_tx_id, redeem_code, request_key, bypassed, failure_reason, created_at, updated_at`

type FullVenueRow struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	ResourceIDs    []uuid.UUID
	ReservationIDs []uuid.UUID
	SlotDate       pgtype.Date
	StartMinute    int32
	EndMinute      int32
	BasePrice      int64
	Price          int64
	Status         string
	LedgerTxID     pgtype.UUID
	RedeemCode     pgtype.Text
	RequestKey     pgtype.Text
	Bypassed       bool
	FailureReason  string
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

func (r *FullVenueRow) Targets() []any {
	return []any{
		&r.ID, &r.UserID, &r.ResourceIDs, &r.ReservationIDs, &r.SlotDate, &r.StartMinute, &r.EndMinute,
		&r.BasePrice, &r.Price, &r.Status, &r.LedgerTxID, &r.RedeemCode, &r.RequestKey, &r.Bypassed,
		&r.FailureReason, &r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *FullVenueRow) Args() []any {
	return []any{
		r.ID, r.UserID, r.ResourceIDs, r.ReservationIDs, r.SlotDate, r.StartMinute, r.EndMinute,
		r.BasePrice, r.Price, r.Status, r.LedgerTxID, r.RedeemCode, r.RequestKey, r.Bypassed,
		r.FailureReason, r.CreatedAt, r.UpdatedAt,
	}
}

func FullVenueToRow(t *fullvenue.Transaction) FullVenueRow {
	slot := t.Slot()
	reservationIDs := t.ReservationIDs()
	if reservationIDs == nil {
		reservationIDs = []uuid.UUID{}
	}
	return FullVenueRow{
		ID:             t.ID(),
		UserID:         t.UserID(),
		ResourceIDs:    t.ResourceIDs(),
		ReservationIDs: reservationIDs,
		SlotDate:       pgconv.DateToPgtype(slot.Date()),
		// #nosec G115 -- minutes of a day
		StartMinute: int32(slot.StartMinute()),
		// #nosec G115 -- minutes of a day
		EndMinute:     int32(slot.EndMinute()),
		BasePrice:     t.BasePrice(),
		Price:         t.Price(),
		Status:        string(t.Status()),
		LedgerTxID:    pgconv.UUIDPtrToPgtype(t.LedgerTxID()),
		RedeemCode:    pgconv.StringPtrToPgtype(t.RedeemCode()),
		RequestKey:    pgconv.StringPtrToPgtype(t.RequestKey()),
		Bypassed:      t.Bypassed(),
		FailureReason: t.FailureReason(),
		CreatedAt:     pgconv.TimeToPgtype(t.CreatedAt()),
		UpdatedAt:     pgconv.TimeToPgtype(t.UpdatedAt()),
	}
}

func FullVenueFromRow(row FullVenueRow, loc *time.Location) (*fullvenue.Transaction, error) {
	slot, err := slotFromColumns(row.SlotDate, row.StartMinute, row.EndMinute, loc)
	if err != nil {
		return nil, err
	}
	status := fullvenue.Status(row.Status)
	if !status.IsValid() {
		return nil, errs.Newf("full venue booking %s has unknown status %q", row.ID, row.Status)
	}
	return fullvenue.ReconstructTransaction(
		row.ID, row.UserID,
		row.ResourceIDs, row.ReservationIDs,
		slot,
		row.BasePrice, row.Price,
		status,
		pgconv.UUIDPtrFromPgtype(row.LedgerTxID),
		pgconv.StringPtrFromPgtype(row.RedeemCode), pgconv.StringPtrFromPgtype(row.RequestKey),
		row.Bypassed,
		row.FailureReason,
		pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func slotFromColumns(date pgtype.Date, start, end int32, loc *time.Location) (reservation.TimeSlot, error) {
	slot, err := reservation.NewTimeSlot(pgconv.DateFromPgtype(date, loc), int(start), int(end))
	if err != nil {
		return reservation.TimeSlot{}, errs.Wrap(err, "stored slot is invalid")
	}
	return slot, nil
}
