package repository

import (
	"context"

	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/infra/repository/converter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RedeemCodeRepository struct {
	db DBTX
}

func NewRedeemCodeRepository(db DBTX) *RedeemCodeRepository {
	return &RedeemCodeRepository{db: db}
}

func (r *RedeemCodeRepository) Create(ctx context.Context, c *redeem.Code) error {
	row := converter.RedeemCodeToRow(c)
	_, err := r.db.Exec(ctx, `
		INSERT INTO redeem_codes (`+converter.RedeemCodeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		row.Args()...,
	)
	if err != nil {
		return classify("failed to create redeem code", err)
	}
	return nil
}

func (r *RedeemCodeRepository) Update(ctx context.Context, c *redeem.Code) error {
	row := converter.RedeemCodeToRow(c)
	tag, err := r.db.Exec(ctx, `
		UPDATE redeem_codes
		SET active = $2, used_count = $3, updated_at = $4
		WHERE code = $1`,
		row.Code, row.Active, row.UsedCount, row.UpdatedAt,
	)
	if err != nil {
		return classify("failed to update redeem code", err)
	}
	return expectOne(tag, "redeem code not found")
}

func (r *RedeemCodeRepository) FindByCode(ctx context.Context, code string) (*redeem.Code, error) {
	var row converter.RedeemCodeRow
	err := r.db.QueryRow(ctx, `SELECT `+converter.RedeemCodeColumns+` FROM redeem_codes WHERE code = $1`, code).
		Scan(row.Targets()...)
	if err != nil {
		return nil, classify("failed to find redeem code", err)
	}
	c, err := converter.RedeemCodeFromRow(row)
	if err != nil {
		return nil, classify("failed to find redeem code", err)
	}
	return c, nil
}

func (r *RedeemCodeRepository) List(ctx context.Context) ([]*redeem.Code, error) {
	rows, err := r.db.Query(ctx, `SELECT `+converter.RedeemCodeColumns+` FROM redeem_codes ORDER BY code`)
	if err != nil {
		return nil, classify("failed to list redeem codes", err)
	}
	out, err := collect(rows, func(rows pgx.Rows) (*redeem.Code, error) {
		var row converter.RedeemCodeRow
		if err := rows.Scan(row.Targets()...); err != nil {
			return nil, err
		}
		return converter.RedeemCodeFromRow(row)
	})
	if err != nil {
		return nil, classify("failed to scan redeem codes", err)
	}
	return out, nil
}

func (r *RedeemCodeRepository) CreateUse(ctx context.Context, u redeem.Use) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO redeem_code_uses (id, code, user_id, reference, released, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Code, u.UserID, u.Reference, u.Released, u.CreatedAt,
	)
	if err != nil {
		return classify("failed to record redeem code use", err)
	}
	return nil
}

func (r *RedeemCodeRepository) ReleaseUse(ctx context.Context, code string, reference uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE redeem_code_uses
		SET released = TRUE
		WHERE id = (
			SELECT id FROM redeem_code_uses
			WHERE code = $1 AND reference = $2 AND NOT released
			ORDER BY created_at
			LIMIT 1
		)`,
		code, reference,
	)
	if err != nil {
		return false, classify("failed to release redeem code use", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RedeemCodeRepository) CountUses(ctx context.Context, code string, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM redeem_code_uses
		WHERE code = $1 AND user_id = $2 AND NOT released`,
		code, userID,
	).Scan(&n)
	if err != nil {
		return 0, classify("failed to count redeem code uses", err)
	}
	return n, nil
}
