package memstore

import (
	"context"
	"fmt"
	"time"

	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type memTx struct {
	store    *Store
	readOnly bool
	staged   *state
	held     []string
	heldSet  map[string]struct{}
}

func newMemTx(s *Store, readOnly bool) *memTx {
	return &memTx{
		store:    s,
		readOnly: readOnly,
		staged:   newState(),
		heldSet:  make(map[string]struct{}),
	}
}

// view runs fn against committed data. Read-only transactions already hold the read lock.
func (t *memTx) view(fn func(c *state)) {
	if t.readOnly {
		fn(t.store.committed)
		return
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	fn(t.store.committed)
}

func (t *memTx) writable(op string) error {
	if t.readOnly {
		return infra.WrapRepoErr(op+" in read-only transaction", nil, infra.KindReadOnly)
	}
	return nil
}

func (t *memTx) releaseLocks() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.store.locks.release(t.held[i])
	}
	t.held = nil
}

func (t *memTx) lock(ctx context.Context, key string) error {
	if err := t.writable("lock " + key); err != nil {
		return err
	}
	if _, ok := t.heldSet[key]; ok {
		return nil
	}
	if err := t.store.locks.acquire(ctx, key); err != nil {
		return infra.WrapRepoErr("acquire lock "+key, err)
	}
	t.heldSet[key] = struct{}{}
	t.held = append(t.held, key)
	return nil
}

func (t *memTx) Locks() shared.LockManager                  { return lockManager{t} }
func (t *memTx) Resources() shared.ResourceRepository       { return resourceRepo{t} }
func (t *memTx) Reservations() shared.ReservationRepository { return reservationRepo{t} }
func (t *memTx) FullVenues() shared.FullVenueRepository     { return fullVenueRepo{t} }
func (t *memTx) Ledger() shared.LedgerRepository            { return ledgerRepo{t} }
func (t *memTx) RedeemCodes() shared.RedeemCodeRepository   { return redeemCodeRepo{t} }
func (t *memTx) Tariff() shared.TariffRepository            { return tariffRepo{t} }
func (t *memTx) Audit() shared.AuditRepository              { return auditRepo{t} }

type lockManager struct{ tx *memTx }

func (l lockManager) LockResourceDay(ctx context.Context, resourceID uuid.UUID, date time.Time) error {
	return l.tx.lock(ctx, fmt.Sprintf("resource-day:%s:%s", resourceID, date.Format(time.DateOnly)))
}

func (l lockManager) LockRedeemCode(ctx context.Context, code string) error {
	return l.tx.lock(ctx, "redeem-code:"+code)
}

func (l lockManager) LockAccount(ctx context.Context, userID uuid.UUID) error {
	return l.tx.lock(ctx, "account:"+userID.String())
}

func (l lockManager) LockTariff(ctx context.Context) error {
	return l.tx.lock(ctx, "tariff")
}

func (l lockManager) LockResource(ctx context.Context, resourceID uuid.UUID) error {
	return l.tx.lock(ctx, "resource:"+resourceID.String())
}
