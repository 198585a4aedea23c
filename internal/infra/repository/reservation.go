package repository

import (
	"context"
	"time"

	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/infra/repository/converter"
	"court-booking-engine/internal/pkg/pgconv"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReservationRepository stores reservations. Slot exclusion is enforced by the caller under
// resource-day locks, since admin bypass may overlap.
type ReservationRepository struct {
	db  DBTX
	loc *time.Location
}

func NewReservationRepository(db DBTX, loc *time.Location) *ReservationRepository {
	return &ReservationRepository{db: db, loc: loc}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	row := converter.ReservationToRow(res)
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations (`+converter.ReservationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		row.Args()...,
	)
	if err != nil {
		return classify("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	row := converter.ReservationToRow(res)
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET status = $2, price = $3, ledger_tx_id = $4, updated_at = $5
		WHERE id = $1`,
		row.ID, row.Status, row.Price, row.LedgerTxID, row.UpdatedAt,
	)
	if err != nil {
		return classify("failed to update reservation", err)
	}
	return expectOne(tag, "reservation not found")
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.findOne(ctx, "failed to find reservation by ID",
		`SELECT `+converter.ReservationColumns+` FROM reservations WHERE id = $1`, id)
}

func (r *ReservationRepository) FindByRequestKey(ctx context.Context, userID uuid.UUID, key string) (*reservation.Reservation, error) {
	return r.findOne(ctx, "failed to find reservation by request key",
		`SELECT `+converter.ReservationColumns+` FROM reservations WHERE user_id = $1 AND request_key = $2`, userID, key)
}

func (r *ReservationRepository) ListActiveByResourceDate(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error) {
	return r.list(ctx, "failed to list active reservations", `
		SELECT `+converter.ReservationColumns+`
		FROM reservations
		WHERE resource_id = $1 AND slot_date = $2 AND status IN ('pending', 'confirmed')
		ORDER BY start_minute, id`,
		resourceID, pgconv.DateToPgtype(date))
}

func (r *ReservationRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*reservation.Reservation, error) {
	return r.list(ctx, "failed to list reservations by group", `
		SELECT `+converter.ReservationColumns+`
		FROM reservations
		WHERE group_id = $1
		ORDER BY resource_id`,
		groupID)
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID uuid.UUID, page shared.Page) ([]*reservation.Reservation, error) {
	if !page.HasCursor() {
		return r.list(ctx, "failed to list reservations by user", `
			SELECT `+converter.ReservationColumns+`
			FROM reservations
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2`,
			userID, page.Limit)
	}
	return r.list(ctx, "failed to list reservations by user", `
		SELECT `+converter.ReservationColumns+`
		FROM reservations
		WHERE user_id = $1 AND (created_at, id) < ($2, $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4`,
		userID, page.AfterCreatedAt, page.AfterID, page.Limit)
}

func (r *ReservationRepository) ListByResourceDate(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error) {
	return r.list(ctx, "failed to list reservations by resource and date", `
		SELECT `+converter.ReservationColumns+`
		FROM reservations
		WHERE resource_id = $1 AND slot_date = $2
		ORDER BY start_minute, created_at`,
		resourceID, pgconv.DateToPgtype(date))
}

func (r *ReservationRepository) findOne(ctx context.Context, msg, sql string, args ...any) (*reservation.Reservation, error) {
	var row converter.ReservationRow
	if err := r.db.QueryRow(ctx, sql, args...).Scan(row.Targets()...); err != nil {
		return nil, classify(msg, err)
	}
	res, err := converter.ReservationFromRow(row, r.loc)
	if err != nil {
		return nil, classify(msg, err)
	}
	return res, nil
}

func (r *ReservationRepository) list(ctx context.Context, msg, sql string, args ...any) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(msg, err)
	}
	out, err := collect(rows, func(rows pgx.Rows) (*reservation.Reservation, error) {
		var row converter.ReservationRow
		if err := rows.Scan(row.Targets()...); err != nil {
			return nil, err
		}
		return converter.ReservationFromRow(row, r.loc)
	})
	if err != nil {
		return nil, classify(msg, err)
	}
	return out, nil
}
