package converter

import (
	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const RedeemCodeColumns = `code, discount_kind, discount_value, min_amount, max_discount, valid_from, valid_to,
	usage_limit, per_user_limit, scope, applicable_types, active, used_count, created_at, updated_at`

type RedeemCodeRow struct {
	Code            string
	DiscountKind    string
	DiscountValue   int64
	MinAmount       int64
	MaxDiscount     pgtype.Int8
	ValidFrom       pgtype.Timestamptz
	ValidTo         pgtype.Timestamptz
	UsageLimit      pgtype.Int4
	PerUserLimit    pgtype.Int4
	Scope           string
	ApplicableTypes []string
	Active          bool
	UsedCount       int32
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

func (r *RedeemCodeRow) Targets() []any {
	return []any{
		&r.Code, &r.DiscountKind, &r.DiscountValue, &r.MinAmount, &r.MaxDiscount, &r.ValidFrom, &r.ValidTo,
		&r.UsageLimit, &r.PerUserLimit, &r.Scope, &r.ApplicableTypes, &r.Active, &r.UsedCount,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *RedeemCodeRow) Args() []any {
	return []any{
		r.Code, r.DiscountKind, r.DiscountValue, r.MinAmount, r.MaxDiscount, r.ValidFrom, r.ValidTo,
		r.UsageLimit, r.PerUserLimit, r.Scope, r.ApplicableTypes, r.Active, r.UsedCount,
		r.CreatedAt, r.UpdatedAt,
	}
}

func RedeemCodeToRow(c *redeem.Code) RedeemCodeRow {
	types := make([]string, len(c.ApplicableTypes()))
	for i, t := range c.ApplicableTypes() {
		types[i] = string(t)
	}
	return RedeemCodeRow{
		Code:            c.Code(),
		DiscountKind:    string(c.Discount().Kind()),
		DiscountValue:   c.Discount().Value(),
		MinAmount:       c.MinAmount(),
		MaxDiscount:     pgconv.Int64PtrToPgtype(c.MaxDiscount()),
		ValidFrom:       pgconv.TimePtrToPgtype(c.ValidFrom()),
		ValidTo:         pgconv.TimePtrToPgtype(c.ValidTo()),
		UsageLimit:      pgconv.IntPtrToPgtype(c.UsageLimit()),
		PerUserLimit:    pgconv.IntPtrToPgtype(c.PerUserLimit()),
		Scope:           string(c.Scope()),
		ApplicableTypes: types,
		Active:          c.IsActive(),
		// #nosec G115 -- bounded by the usage limit
		UsedCount: int32(c.UsedCount()),
		CreatedAt: pgconv.TimeToPgtype(c.CreatedAt()),
		UpdatedAt: pgconv.TimeToPgtype(c.UpdatedAt()),
	}
}

func RedeemCodeFromRow(row RedeemCodeRow) (*redeem.Code, error) {
	discount, err := redeem.NewDiscount(redeem.DiscountKind(row.DiscountKind), row.DiscountValue)
	if err != nil {
		return nil, errs.Wrapf(err, "redeem code %s has an invalid discount", row.Code)
	}
	scope, err := redeem.NewScope(row.Scope)
	if err != nil {
		return nil, errs.Wrapf(err, "redeem code %s has an invalid scope", row.Code)
	}
	types := make([]resource.Type, len(row.ApplicableTypes))
	for i, t := range row.ApplicableTypes {
		types[i] = resource.Type(t)
	}
	return redeem.ReconstructCode(
		row.Code,
		discount,
		row.MinAmount,
		pgconv.Int64PtrFromPgtype(row.MaxDiscount),
		pgconv.TimePtrFromPgtype(row.ValidFrom), pgconv.TimePtrFromPgtype(row.ValidTo),
		pgconv.IntPtrFromPgtype(row.UsageLimit), pgconv.IntPtrFromPgtype(row.PerUserLimit),
		scope,
		types,
		row.Active,
		int(row.UsedCount),
		pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
