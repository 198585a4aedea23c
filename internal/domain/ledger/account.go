package ledger

import (
	"time"

	"court-booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type Account struct {
	userID    uuid.UUID
	balance   int64
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

func NewAccount(userID uuid.UUID, now time.Time) *Account {
	return &Account{userID: userID, createdAt: now, updatedAt: now}
}

func ReconstructAccount(userID uuid.UUID, balance, version int64, createdAt, updatedAt time.Time) *Account {
	return &Account{
		userID:    userID,
		balance:   balance,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (a *Account) credit(amount int64, now time.Time) {
	a.balance += amount
	a.version++
	a.updatedAt = now
}

// debit refuses to take the balance below zero unless allowNegative is set.
func (a *Account) debit(amount int64, allowNegative bool, now time.Time) error {
	if !allowNegative && a.balance < amount {
		return errs.Wrapf(errs.ErrInsufficientBalance, "balance %d, required %d", a.balance, amount)
	}
	a.balance -= amount
	a.version++
	a.updatedAt = now
	return nil
}

func (a *Account) CanAfford(amount int64) bool {
	return a.balance >= amount
}

func (a *Account) UserID() uuid.UUID    { return a.userID }
func (a *Account) Balance() int64       { return a.balance }
func (a *Account) Version() int64       { return a.version }
func (a *Account) CreatedAt() time.Time { return a.createdAt }
func (a *Account) UpdatedAt() time.Time { return a.updatedAt }
