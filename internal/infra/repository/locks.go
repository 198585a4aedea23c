package repository

import (
	"context"
	"time"

	"court-booking-engine/internal/infra"

	"github.com/google/uuid"
)

// AdvisoryLocks takes transaction-scoped advisory locks, released on commit or rollback.
type AdvisoryLocks struct {
	db       DBTX
	readOnly bool
}

func NewAdvisoryLocks(db DBTX, readOnly bool) *AdvisoryLocks {
	return &AdvisoryLocks{db: db, readOnly: readOnly}
}

func (l *AdvisoryLocks) LockResourceDay(ctx context.Context, resourceID uuid.UUID, date time.Time) error {
	return l.lock(ctx, "resource-day:"+resourceID.String()+":"+date.Format(time.DateOnly))
}

func (l *AdvisoryLocks) LockRedeemCode(ctx context.Context, code string) error {
	return l.lock(ctx, "redeem-code:"+code)
}

func (l *AdvisoryLocks) LockAccount(ctx context.Context, userID uuid.UUID) error {
	return l.lock(ctx, "account:"+userID.String())
}

func (l *AdvisoryLocks) LockTariff(ctx context.Context) error {
	return l.lock(ctx, "tariff")
}

func (l *AdvisoryLocks) LockResource(ctx context.Context, resourceID uuid.UUID) error {
	return l.lock(ctx, "resource:"+resourceID.String())
}

func (l *AdvisoryLocks) lock(ctx context.Context, key string) error {
	if l.readOnly {
		return infra.WrapRepoErr("cannot lock "+key+" in a read-only transaction", nil, infra.KindReadOnly)
	}
	if _, err := l.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return classify("failed to acquire lock "+key, err)
	}
	return nil
}
