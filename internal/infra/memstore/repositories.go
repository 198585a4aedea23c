package memstore

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"time"

	"court-booking-engine/internal/domain/audit"
	"court-booking-engine/internal/domain/fullvenue"
	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// lookup reads staged data first, then committed data.
func lookup[K comparable, V any](t *memTx, pick func(*state) map[K]V, key K) (V, bool) {
	if v, ok := pick(t.staged)[key]; ok {
		return v, true
	}
	var (
		v  V
		ok bool
	)
	t.view(func(c *state) { v, ok = pick(c)[key] })
	return v, ok
}

// all returns committed data overlaid with staged data.
func all[K comparable, V any](t *memTx, pick func(*state) map[K]V) []V {
	merged := make(map[K]V)
	t.view(func(c *state) {
		for k, v := range pick(c) {
			merged[k] = v
		}
	})
	for k, v := range pick(t.staged) {
		merged[k] = v
	}
	out := make([]V, 0, len(merged))
	for _, v := range merged {
		out = append(out, v)
	}
	return out
}

func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

// newestFirst orders by (createdAt, id) descending and applies the keyset page.
func newestFirst[T any](items []T, key func(T) (time.Time, uuid.UUID), page shared.Page) []T {
	slices.SortFunc(items, func(a, b T) int {
		at, aid := key(a)
		bt, bid := key(b)
		if c := bt.Compare(at); c != 0 {
			return c
		}
		return compareIDs(bid, aid)
	})
	out := make([]T, 0, len(items))
	for _, it := range items {
		if page.HasCursor() {
			ts, id := key(it)
			c := ts.Compare(page.AfterCreatedAt)
			if c > 0 || (c == 0 && compareIDs(id, page.AfterID) >= 0) {
				continue
			}
		}
		out = append(out, it)
		if page.Limit > 0 && len(out) == page.Limit {
			break
		}
	}
	return out
}

func sameDate(slot reservation.TimeSlot, date time.Time) bool {
	return slot.DateString() == date.Format(time.DateOnly)
}

func byStart(a, b *reservation.Reservation) int {
	if c := cmp.Compare(a.TimeSlot().StartMinute(), b.TimeSlot().StartMinute()); c != 0 {
		return c
	}
	return a.CreatedAt().Compare(b.CreatedAt())
}

// Entities are copied on the way in and out so callers never share memory with the store.

func cloneResource(r *resource.Resource) *resource.Resource {
	cp := *r
	return &cp
}

func cloneReservation(r *reservation.Reservation) *reservation.Reservation {
	cp := *r
	return &cp
}

func cloneFullVenue(t *fullvenue.Transaction) *fullvenue.Transaction {
	return fullvenue.ReconstructTransaction(
		t.ID(), t.UserID(),
		slices.Clone(t.ResourceIDs()), slices.Clone(t.ReservationIDs()),
		t.Slot(),
		t.BasePrice(), t.Price(),
		t.Status(),
		t.LedgerTxID(),
		t.RedeemCode(), t.RequestKey(),
		t.Bypassed(),
		t.FailureReason(),
		t.CreatedAt(), t.UpdatedAt(),
	)
}

func cloneAccount(a *ledger.Account) *ledger.Account {
	cp := *a
	return &cp
}

func cloneLedgerTx(t *ledger.Transaction) *ledger.Transaction {
	cp := *t
	return &cp
}

func cloneCode(c *redeem.Code) *redeem.Code {
	cp := *c
	return &cp
}

type resourceRepo struct{ tx *memTx }

func resources(s *state) map[uuid.UUID]*resource.Resource { return s.resources }

func (r resourceRepo) Create(_ context.Context, res *resource.Resource) error {
	if err := r.tx.writable("create resource"); err != nil {
		return err
	}
	if _, ok := lookup(r.tx, resources, res.ID()); ok {
		return infra.WrapRepoErr("resource already exists", nil, infra.KindDuplicateKey)
	}
	r.tx.staged.resources[res.ID()] = cloneResource(res)
	return nil
}

func (r resourceRepo) Update(_ context.Context, res *resource.Resource) error {
	if err := r.tx.writable("update resource"); err != nil {
		return err
	}
	if _, ok := lookup(r.tx, resources, res.ID()); !ok {
		return infra.NotFound("resource not found")
	}
	r.tx.staged.resources[res.ID()] = cloneResource(res)
	return nil
}

func (r resourceRepo) FindByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, ok := lookup(r.tx, resources, id)
	if !ok {
		return nil, infra.NotFound("resource not found")
	}
	return cloneResource(res), nil
}

func (r resourceRepo) List(_ context.Context) ([]*resource.Resource, error) {
	items := all(r.tx, resources)
	slices.SortFunc(items, func(a, b *resource.Resource) int {
		if c := cmp.Compare(a.Name(), b.Name()); c != 0 {
			return c
		}
		return compareIDs(a.ID(), b.ID())
	})
	out := make([]*resource.Resource, len(items))
	for i, res := range items {
		out[i] = cloneResource(res)
	}
	return out, nil
}

type reservationRepo struct{ tx *memTx }

func reservations(s *state) map[uuid.UUID]*reservation.Reservation { return s.reservations }

func (r reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.writable("create reservation"); err != nil {
		return err
	}
	if _, ok := lookup(r.tx, reservations, res.ID()); ok {
		return infra.WrapRepoErr("reservation already exists", nil, infra.KindDuplicateKey)
	}
	if key := res.RequestKey(); key != nil {
		if _, err := r.FindByRequestKey(context.Background(), res.UserID(), *key); err == nil {
			return infra.WrapRepoErr("request key already used", nil, infra.KindDuplicateKey)
		}
	}
	r.tx.staged.reservations[res.ID()] = cloneReservation(res)
	return nil
}

func (r reservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.writable("update reservation"); err != nil {
		return err
	}
	if _, ok := lookup(r.tx, reservations, res.ID()); !ok {
		return infra.NotFound("reservation not found")
	}
	r.tx.staged.reservations[res.ID()] = cloneReservation(res)
	return nil
}

func (r reservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := lookup(r.tx, reservations, id)
	if !ok {
		return nil, infra.NotFound("reservation not found")
	}
	return cloneReservation(res), nil
}

func (r reservationRepo) FindByRequestKey(_ context.Context, userID uuid.UUID, key string) (*reservation.Reservation, error) {
	for _, res := range all(r.tx, reservations) {
		if res.UserID() == userID && res.RequestKey() != nil && *res.RequestKey() == key {
			return cloneReservation(res), nil
		}
	}
	return nil, infra.NotFound("reservation not found")
}

func (r reservationRepo) filter(keep func(*reservation.Reservation) bool) []*reservation.Reservation {
	var out []*reservation.Reservation
	for _, res := range all(r.tx, reservations) {
		if keep(res) {
			out = append(out, cloneReservation(res))
		}
	}
	return out
}

func (r reservationRepo) ListActiveByResourceDate(_ context.Context, resourceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error) {
	out := r.filter(func(res *reservation.Reservation) bool {
		return res.ResourceID() == resourceID && res.IsActive() && sameDate(res.TimeSlot(), date)
	})
	slices.SortFunc(out, byStart)
	return out, nil
}

func (r reservationRepo) ListByGroup(_ context.Context, groupID uuid.UUID) ([]*reservation.Reservation, error) {
	out := r.filter(func(res *reservation.Reservation) bool {
		return res.GroupID() != nil && *res.GroupID() == groupID
	})
	slices.SortFunc(out, func(a, b *reservation.Reservation) int { return compareIDs(a.ResourceID(), b.ResourceID()) })
	return out, nil
}

func (r reservationRepo) ListByUser(_ context.Context, userID uuid.UUID, page shared.Page) ([]*reservation.Reservation, error) {
	out := r.filter(func(res *reservation.Reservation) bool { return res.UserID() == userID })
	return newestFirst(out, func(res *reservation.Reservation) (time.Time, uuid.UUID) {
		return res.CreatedAt(), res.ID()
	}, page), nil
}

func (r reservationRepo) ListByResourceDate(_ context.Context, resourceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error) {
	out := r.filter(func(res *reservation.Reservation) bool {
		return res.ResourceID() == resourceID && sameDate(res.TimeSlot(), date)
	})
	slices.SortFunc(out, byStart)
	return out, nil
}

type fullVenueRepo struct{ tx *memTx }

func fullVenues(s *state) map[uuid.UUID]*fullvenue.Transaction { return s.fullVenues }

func (r fullVenueRepo) Create(ctx context.Context, t *fullvenue.Transaction) error {
	if err := r.tx.writable("create full venue booking"); err != nil {
		return err
	}
	if _, ok := lookup(r.tx, fullVenues, t.ID()); ok {
		return infra.WrapRepoErr("full venue booking already exists", nil, infra.KindDuplicateKey)
	}
	if key := t.RequestKey(); key != nil {
		if _, err := r.FindByRequestKey(ctx, t.UserID(), *key); err == nil {
			return infra.WrapRepoErr("request key already used", nil, infra.KindDuplicateKey)
		}
	}
	r.tx.staged.fullVenues[t.ID()] = cloneFullVenue(t)
	return nil
}

func (r fullVenueRepo) Update(_ context.Context, t *fullvenue.Transaction) error {
	if err := r.tx.writable("update full venue booking"); err != nil {
		return err
	}
	if _, ok := lookup(r.tx, fullVenues, t.ID()); !ok {
		return infra.NotFound("full venue booking not found")
	}
	r.tx.staged.fullVenues[t.ID()] = cloneFullVenue(t)
	return nil
}

func (r fullVenueRepo) FindByID(_ context.Context, id uuid.UUID) (*fullvenue.Transaction, error) {
	t, ok := lookup(r.tx, fullVenues, id)
	if !ok {
		return nil, infra.NotFound("full venue booking not found")
	}
	return cloneFullVenue(t), nil
}

func (r fullVenueRepo) FindByRequestKey(_ context.Context, userID uuid.UUID, key string) (*fullvenue.Transaction, error) {
	for _, t := range all(r.tx, fullVenues) {
		if t.UserID() == userID && t.RequestKey() != nil && *t.RequestKey() == key {
			return cloneFullVenue(t), nil
		}
	}
	return nil, infra.NotFound("full venue booking not found")
}

type ledgerRepo struct{ tx *memTx }

func accounts(s *state) map[uuid.UUID]*ledger.Account      { return s.accounts }
func ledgerTxs(s *state) map[uuid.UUID]*ledger.Transaction { return s.ledgerTxs }

func (r ledgerRepo) FindAccount(_ context.Context, userID uuid.UUID) (*ledger.Account, error) {
	acc, ok := lookup(r.tx, accounts, userID)
	if !ok {
		return nil, infra.NotFound("account not found")
	}
	return cloneAccount(acc), nil
}

func (r ledgerRepo) SaveAccount(_ context.Context, acc *ledger.Account) error {
	if err := r.tx.writable("save account"); err != nil {
		return err
	}
	r.tx.staged.accounts[acc.UserID()] = cloneAccount(acc)
	return nil
}

func (r ledgerRepo) CreateTransaction(ctx context.Context, t *ledger.Transaction) error {
	if err := r.tx.writable("create ledger transaction"); err != nil {
		return err
	}
	if _, ok := lookup(r.tx, ledgerTxs, t.ID()); ok {
		return infra.WrapRepoErr("ledger transaction already exists", nil, infra.KindDuplicateKey)
	}
	if _, ok := lookup(r.tx, accounts, t.AccountID()); !ok {
		return infra.WrapRepoErr("account does not exist", nil, infra.KindForeignKeyViolated)
	}
	if t.Reference() != "" {
		if _, err := r.FindByReference(ctx, t.AccountID(), t.Kind(), t.Reference()); err == nil {
			return infra.WrapRepoErr("ledger reference already used", nil, infra.KindDuplicateKey)
		}
	}
	r.tx.staged.ledgerTxs[t.ID()] = cloneLedgerTx(t)
	return nil
}

func (r ledgerRepo) UpdateTransaction(_ context.Context, t *ledger.Transaction) error {
	if err := r.tx.writable("update ledger transaction"); err != nil {
		return err
	}
	if _, ok := lookup(r.tx, ledgerTxs, t.ID()); !ok {
		return infra.NotFound("ledger transaction not found")
	}
	r.tx.staged.ledgerTxs[t.ID()] = cloneLedgerTx(t)
	return nil
}

func (r ledgerRepo) FindTransaction(_ context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	t, ok := lookup(r.tx, ledgerTxs, id)
	if !ok {
		return nil, infra.NotFound("ledger transaction not found")
	}
	return cloneLedgerTx(t), nil
}

func (r ledgerRepo) FindByReference(_ context.Context, accountID uuid.UUID, kind ledger.Kind, reference string) (*ledger.Transaction, error) {
	for _, t := range all(r.tx, ledgerTxs) {
		if t.AccountID() == accountID && t.Kind() == kind && t.Reference() == reference {
			return cloneLedgerTx(t), nil
		}
	}
	return nil, infra.NotFound("ledger transaction not found")
}

func (r ledgerRepo) ListTransactions(_ context.Context, accountID uuid.UUID, page shared.Page) ([]*ledger.Transaction, error) {
	var out []*ledger.Transaction
	for _, t := range all(r.tx, ledgerTxs) {
		if t.AccountID() == accountID {
			out = append(out, cloneLedgerTx(t))
		}
	}
	return newestFirst(out, func(t *ledger.Transaction) (time.Time, uuid.UUID) {
		return t.CreatedAt(), t.ID()
	}, page), nil
}

type redeemCodeRepo struct{ tx *memTx }

func codes(s *state) map[string]*redeem.Code { return s.codes }
func uses(s *state) map[uuid.UUID]redeem.Use { return s.uses }

func (r redeemCodeRepo) Create(_ context.Context, c *redeem.Code) error {
	if err := r.tx.writable("create redeem code"); err != nil {
		return err
	}
	if _, ok := lookup(r.tx, codes, c.Code()); ok {
		return infra.WrapRepoErr("redeem code already exists", nil, infra.KindDuplicateKey)
	}
	r.tx.staged.codes[c.Code()] = cloneCode(c)
	return nil
}

func (r redeemCodeRepo) Update(_ context.Context, c *redeem.Code) error {
	if err := r.tx.writable("update redeem code"); err != nil {
		return err
	}
	if _, ok := lookup(r.tx, codes, c.Code()); !ok {
		return infra.NotFound("redeem code not found")
	}
	r.tx.staged.codes[c.Code()] = cloneCode(c)
	return nil
}

func (r redeemCodeRepo) FindByCode(_ context.Context, code string) (*redeem.Code, error) {
	c, ok := lookup(r.tx, codes, code)
	if !ok {
		return nil, infra.NotFound("redeem code not found")
	}
	return cloneCode(c), nil
}

func (r redeemCodeRepo) List(_ context.Context) ([]*redeem.Code, error) {
	items := all(r.tx, codes)
	slices.SortFunc(items, func(a, b *redeem.Code) int { return cmp.Compare(a.Code(), b.Code()) })
	out := make([]*redeem.Code, len(items))
	for i, c := range items {
		out[i] = cloneCode(c)
	}
	return out, nil
}

func (r redeemCodeRepo) CreateUse(_ context.Context, u redeem.Use) error {
	if err := r.tx.writable("create redeem use"); err != nil {
		return err
	}
	if _, ok := lookup(r.tx, codes, u.Code); !ok {
		return infra.WrapRepoErr("redeem code does not exist", nil, infra.KindForeignKeyViolated)
	}
	r.tx.staged.uses[u.ID] = u
	return nil
}

func (r redeemCodeRepo) ReleaseUse(_ context.Context, code string, reference uuid.UUID) (bool, error) {
	if err := r.tx.writable("release redeem use"); err != nil {
		return false, err
	}
	for _, u := range all(r.tx, uses) {
		if u.Code == code && u.Reference == reference && !u.Released {
			u.Released = true
			r.tx.staged.uses[u.ID] = u
			return true, nil
		}
	}
	return false, nil
}

func (r redeemCodeRepo) CountUses(_ context.Context, code string, userID uuid.UUID) (int, error) {
	n := 0
	for _, u := range all(r.tx, uses) {
		if u.Code == code && u.UserID == userID && !u.Released {
			n++
		}
	}
	return n, nil
}

type tariffRepo struct{ tx *memTx }

func (r tariffRepo) Load(_ context.Context) (*tariff.Config, error) {
	cfg := r.tx.staged.tariff
	if cfg == nil {
		r.tx.view(func(c *state) { cfg = c.tariff })
	}
	var out tariff.Config
	if cfg == nil {
		out = tariff.DefaultConfig()
	} else {
		out = cfg.Clone()
	}
	return &out, nil
}

func (r tariffRepo) Save(_ context.Context, cfg *tariff.Config) error {
	if err := r.tx.writable("save tariff"); err != nil {
		return err
	}
	cp := cfg.Clone()
	r.tx.staged.tariff = &cp
	return nil
}

type auditRepo struct{ tx *memTx }

func (r auditRepo) Append(_ context.Context, rec audit.Record) error {
	if err := r.tx.writable("append audit record"); err != nil {
		return err
	}
	r.tx.staged.audit = append(r.tx.staged.audit, rec)
	return nil
}
