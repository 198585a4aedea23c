package repository

import (
	"context"
	"time"

	"court-booking-engine/internal/domain/fullvenue"
	"court-booking-engine/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type FullVenueRepository struct {
	db  DBTX
	loc *time.Location
}

func NewFullVenueRepository(db DBTX, loc *time.Location) *FullVenueRepository {
	return &FullVenueRepository{db: db, loc: loc}
}

func (r *FullVenueRepository) Create(ctx context.Context, t *fullvenue.Transaction) error {
	row := converter.FullVenueToRow(t)
	_, err := r.db.Exec(ctx, `
		INSERT INTO full_venue_transactions (`+converter.FullVenueColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		row.Args()...,
	)
	if err != nil {
		return classify("failed to create full venue booking", err)
	}
	return nil
}

func (r *FullVenueRepository) Update(ctx context.Context, t *fullvenue.Transaction) error {
	row := converter.FullVenueToRow(t)
	tag, err := r.db.Exec(ctx, `
		UPDATE full_venue_transactions
		SET reservation_ids = $2, status = $3, ledger_tx_id = $4, failure_reason = $5, updated_at = $6
		WHERE id = $1`,
		row.ID, row.ReservationIDs, row.Status, row.LedgerTxID, row.FailureReason, row.UpdatedAt,
	)
	if err != nil {
		return classify("failed to update full venue booking", err)
	}
	return expectOne(tag, "full venue booking not found")
}

func (r *FullVenueRepository) FindByID(ctx context.Context, id uuid.UUID) (*fullvenue.Transaction, error) {
	return r.findOne(ctx, "failed to find full venue booking by ID",
		`SELECT `+converter.FullVenueColumns+` FROM full_venue_transactions WHERE id = $1`, id)
}

func (r *FullVenueRepository) FindByRequestKey(ctx context.Context, userID uuid.UUID, key string) (*fullvenue.Transaction, error) {
	return r.findOne(ctx, "failed to find full venue booking by request key",
		`SELECT `+converter.FullVenueColumns+` FROM full_venue_transactions WHERE user_id = $1 AND request_key = $2`, userID, key)
}

func (r *FullVenueRepository) findOne(ctx context.Context, msg, sql string, args ...any) (*fullvenue.Transaction, error) {
	var row converter.FullVenueRow
	if err := r.db.QueryRow(ctx, sql, args...).Scan(row.Targets()...); err != nil {
		return nil, classify(msg, err)
	}
	t, err := converter.FullVenueFromRow(row, r.loc)
	if err != nil {
		return nil, classify(msg, err)
	}
	return t, nil
}
