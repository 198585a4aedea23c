package ledger

import (
	"time"

	"court-booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

// Transaction is one ledger entry. Amount is signed: credits positive, debits negative.
//
// creditApplied and debitApplied record which balance effects have already happened, so a
// transaction contributes to the balance iff creditApplied && !debitApplied (credits) or
// debitApplied (debits). Status changes consult the flags and never apply an effect twice.
type Transaction struct {
	id            uuid.UUID
	accountID     uuid.UUID
	amount        int64
	kind          Kind
	reference     string
	status        Status
	creditApplied bool
	debitApplied  bool
	note          string
	createdAt     time.Time
	updatedAt     time.Time
}

func ReconstructTransaction(
	id, accountID uuid.UUID,
	amount int64,
	kind Kind,
	reference string,
	status Status,
	creditApplied, debitApplied bool,
	note string,
	createdAt, updatedAt time.Time,
) *Transaction {
	return &Transaction{
		id:            id,
		accountID:     accountID,
		amount:        amount,
		kind:          kind,
		reference:     reference,
		status:        status,
		creditApplied: creditApplied,
		debitApplied:  debitApplied,
		note:          note,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func newTransaction(acc *Account, amount int64, kind Kind, reference, note string, now time.Time) *Transaction {
	return &Transaction{
		id:        uuid.New(),
		accountID: acc.UserID(),
		amount:    amount,
		kind:      kind,
		reference: reference,
		status:    StatusCompleted,
		note:      note,
		createdAt: now,
		updatedAt: now,
	}
}

// Credit adds amount to acc and returns the completed entry.
func Credit(acc *Account, amount int64, kind Kind, reference, note string, now time.Time) (*Transaction, error) {
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if !kind.IsValid() || kind == KindSpend {
		return nil, errs.Wrapf(ErrInvalidKind, "%s cannot be a credit", kind)
	}
	tx := newTransaction(acc, amount, kind, reference, note, now)
	acc.credit(amount, now)
	tx.creditApplied = true
	return tx, nil
}

// Debit removes amount from acc. It fails with ErrInsufficientBalance unless bypass is set.
func Debit(acc *Account, amount int64, kind Kind, reference, note string, bypass bool, now time.Time) (*Transaction, error) {
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if !kind.IsValid() || kind == KindRefund || kind == KindRecharge {
		return nil, errs.Wrapf(ErrInvalidKind, "%s cannot be a debit", kind)
	}
	if err := acc.debit(amount, bypass, now); err != nil {
		return nil, err
	}
	tx := newTransaction(acc, -amount, kind, reference, note, now)
	tx.debitApplied = true
	return tx, nil
}

// Adjust applies a signed manual correction.
func Adjust(acc *Account, delta int64, reason string, bypass bool, now time.Time) (*Transaction, error) {
	switch {
	case delta > 0:
		return Credit(acc, delta, KindAdminAdjust, "", reason, now)
	case delta < 0:
		return Debit(acc, -delta, KindAdminAdjust, "", reason, bypass, now)
	default:
		return nil, errs.ErrInvalidAmount
	}
}

// NewRecharge records a top-up. A completed recharge credits immediately; a pending one
// waits for SetRechargeStatus.
func NewRecharge(acc *Account, amount int64, reference string, status Status, now time.Time) (*Transaction, error) {
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if status != StatusPending && status != StatusCompleted {
		return nil, errs.Wrapf(errs.ErrInvalidStatusTransition, "recharge cannot start as %s", status)
	}
	tx := newTransaction(acc, amount, KindRecharge, reference, "", now)
	tx.status = StatusPending
	if _, err := tx.SetRechargeStatus(acc, status, false, now); err != nil {
		return nil, err
	}
	return tx, nil
}

func (t *Transaction) contributes() bool {
	return t.creditApplied && !t.debitApplied
}

// SetRechargeStatus moves a recharge to status. The balance holds +amount exactly while the
// status is completed; leaving completed reverses exactly that amount. Repeating a status is a no-op.
func (t *Transaction) SetRechargeStatus(acc *Account, status Status, bypass bool, now time.Time) (bool, error) {
	if t.kind != KindRecharge {
		return false, errs.ErrNotRechargeTransaction
	}
	if !status.IsValid() {
		return false, ErrInvalidStatus
	}
	if acc.UserID() != t.accountID {
		return false, errs.Wrap(errs.ErrDomainValidation, "account does not own transaction")
	}

	changed := false
	if status == StatusCompleted && !t.contributes() {
		acc.credit(t.amount, now)
		t.creditApplied = true
		t.debitApplied = false
		changed = true
	}
	if status != StatusCompleted && t.contributes() {
		if err := acc.debit(t.amount, bypass, now); err != nil {
			return false, err
		}
		t.debitApplied = true
		changed = true
	}
	if t.status != status {
		t.status = status
		changed = true
	}
	if changed {
		t.updatedAt = now
	}
	return changed, nil
}

func (t *Transaction) ID() uuid.UUID        { return t.id }
func (t *Transaction) AccountID() uuid.UUID { return t.accountID }
func (t *Transaction) Amount() int64        { return t.amount }
func (t *Transaction) Kind() Kind           { return t.kind }
func (t *Transaction) Reference() string    { return t.reference }
func (t *Transaction) Status() Status       { return t.status }
func (t *Transaction) CreditApplied() bool  { return t.creditApplied }
func (t *Transaction) DebitApplied() bool   { return t.debitApplied }
func (t *Transaction) Note() string         { return t.note }
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time { return t.updatedAt }
