package commands

import (
	"context"
	"log/slog"

	"court-booking-engine/internal/domain/audit"
	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/pkg/clock"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type LedgerEntryInput struct {
	UserID    uuid.UUID
	Amount    int64
	Kind      ledger.Kind
	Reference string
	Note      string
	// Bypass lets a debit take the balance below zero. Admin only.
	Bypass bool
}

type RechargeInput struct {
	UserID    uuid.UUID
	Amount    int64
	Reference string
	Status    ledger.Status
}

type RechargeStatusInput struct {
	TransactionID uuid.UUID
	Status        ledger.Status
	Bypass        bool
	Reason        string
}

type AdjustInput struct {
	UserID uuid.UUID
	Delta  int64
	Reason string
	Bypass bool
}

type LedgerResult struct {
	Transaction *ledger.Transaction
	Balance     int64
	// Replayed is set when a reference matched an earlier transaction.
	Replayed bool
	// Changed is false when a status update was a no-op.
	Changed bool
}

type LedgerCommands interface {
	Credit(ctx context.Context, actor user.Identity, in LedgerEntryInput) (*LedgerResult, error)
	Debit(ctx context.Context, actor user.Identity, in LedgerEntryInput) (*LedgerResult, error)
	Recharge(ctx context.Context, actor user.Identity, in RechargeInput) (*LedgerResult, error)
	SetRechargeStatus(ctx context.Context, actor user.Identity, in RechargeStatusInput) (*LedgerResult, error)
	AdminAdjust(ctx context.Context, actor user.Identity, in AdjustInput) (*LedgerResult, error)
}

type ledgerCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	metrics   shared.BookingMetrics
	clock     clock.Clock
}

func NewLedgerCommands(
	uow shared.UnitOfWork,
	publisher shared.EventPublisher,
	metrics shared.BookingMetrics,
	clk clock.Clock,
) LedgerCommands {
	return &ledgerCommandsImpl{
		uow:       uow,
		publisher: publisher,
		metrics:   metrics,
		clock:     clk,
	}
}

func requireAdmin(actor user.Identity) error {
	if !actor.IsAdmin() {
		return errs.Wrap(errs.ErrForbidden, "admin role required")
	}
	return nil
}

func (c *ledgerCommandsImpl) Credit(ctx context.Context, actor user.Identity, in LedgerEntryInput) (*LedgerResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	out, err := c.entry(ctx, func(ctx context.Context, tx shared.Tx) (*ledger.Transaction, bool, error) {
		return creditAccount(ctx, tx, in.UserID, in.Amount, in.Kind, in.Reference, in.Note, c.clock.Now())
	}, in.UserID)
	if err != nil {
		return nil, err
	}
	if !out.Replayed {
		c.metrics.LedgerMoved(in.Kind, in.Amount)
	}
	return out, nil
}

// Debit spends from the caller's own balance. Admins may debit any account and bypass the balance check.
func (c *ledgerCommandsImpl) Debit(ctx context.Context, actor user.Identity, in LedgerEntryInput) (*LedgerResult, error) {
	if (in.UserID != actor.UserID || in.Bypass) && !actor.IsAdmin() {
		return nil, errs.Wrap(errs.ErrForbidden, "admin role required")
	}
	out, err := c.entry(ctx, func(ctx context.Context, tx shared.Tx) (*ledger.Transaction, bool, error) {
		return debitAccount(ctx, tx, in.UserID, in.Amount, in.Kind, in.Reference, in.Note, in.Bypass, c.clock.Now())
	}, in.UserID)
	if err != nil {
		return nil, err
	}
	if !out.Replayed {
		c.metrics.LedgerMoved(in.Kind, in.Amount)
	}
	return out, nil
}

func (c *ledgerCommandsImpl) entry(
	ctx context.Context,
	fn func(ctx context.Context, tx shared.Tx) (*ledger.Transaction, bool, error),
	userID uuid.UUID,
) (*LedgerResult, error) {
	var out *LedgerResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entry, replayed, err := fn(ctx, tx)
		if err != nil {
			return err
		}
		acc, _, err := loadAccount(ctx, tx, userID, c.clock.Now())
		if err != nil {
			return err
		}
		out = &LedgerResult{Transaction: entry, Balance: acc.Balance(), Replayed: replayed, Changed: !replayed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerCommandsImpl) Recharge(ctx context.Context, actor user.Identity, in RechargeInput) (*LedgerResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = ledger.StatusCompleted
	}

	var out *LedgerResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Locks().LockAccount(ctx, in.UserID); err != nil {
			return dbErr(err)
		}
		now := c.clock.Now()
		acc, _, err := loadAccount(ctx, tx, in.UserID, now)
		if err != nil {
			return err
		}
		if existing, err := findByReference(ctx, tx, in.UserID, ledger.KindRecharge, in.Reference); err != nil || existing != nil {
			if err == nil {
				out = &LedgerResult{Transaction: existing, Balance: acc.Balance(), Replayed: true}
			}
			return err
		}

		entry, err := ledger.NewRecharge(acc, in.Amount, in.Reference, in.Status, now)
		if err != nil {
			return err
		}
		if err := persistEntry(ctx, tx, acc, entry); err != nil {
			return err
		}
		out = &LedgerResult{Transaction: entry, Balance: acc.Balance(), Changed: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !out.Replayed && out.Transaction.CreditApplied() {
		c.metrics.LedgerMoved(ledger.KindRecharge, in.Amount)
	}
	return out, nil
}

func (c *ledgerCommandsImpl) SetRechargeStatus(ctx context.Context, actor user.Identity, in RechargeStatusInput) (*LedgerResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var (
		out   *LedgerResult
		delta int64
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		delta = 0
		entry, err := loadLedgerTx(ctx, tx, in.TransactionID)
		if err != nil {
			return err
		}
		if err := tx.Locks().LockAccount(ctx, entry.AccountID()); err != nil {
			return dbErr(err)
		}
		if entry, err = loadLedgerTx(ctx, tx, in.TransactionID); err != nil {
			return err
		}

		now := c.clock.Now()
		acc, _, err := loadAccount(ctx, tx, entry.AccountID(), now)
		if err != nil {
			return err
		}
		before := acc.Balance()
		from := entry.Status()
		changed, err := entry.SetRechargeStatus(acc, in.Status, in.Bypass, now)
		if err != nil {
			return err
		}
		out = &LedgerResult{Transaction: entry, Balance: acc.Balance(), Changed: changed}
		if !changed {
			return nil
		}
		delta = acc.Balance() - before

		if delta != 0 {
			if err := tx.Ledger().SaveAccount(ctx, acc); err != nil {
				return dbErr(err)
			}
		}
		if err := tx.Ledger().UpdateTransaction(ctx, entry); err != nil {
			return dbErr(err)
		}
		record := audit.NewRecord(actor.UserID, audit.ActionRechargeStatus, entry.ID().String(), in.Reason, map[string]any{
			"from":   string(from),
			"to":     string(in.Status),
			"delta":  delta,
			"bypass": in.Bypass,
		}, now)
		if err := tx.Audit().Append(ctx, record); err != nil {
			return dbErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !out.Changed {
		return out, nil
	}

	if delta != 0 {
		c.metrics.LedgerMoved(ledger.KindRecharge, delta)
	}
	slog.Info("recharge status changed",
		"transaction_id", out.Transaction.ID().String(),
		"status", string(out.Transaction.Status()),
		"delta", delta)
	publish(ctx, c.publisher, shared.Event{
		Type:        shared.EventRechargeStatus,
		AggregateID: out.Transaction.ID(),
		UserID:      out.Transaction.AccountID(),
		Payload: map[string]any{
			"status":  string(out.Transaction.Status()),
			"delta":   delta,
			"balance": out.Balance,
		},
		OccurredAt: out.Transaction.UpdatedAt(),
	})
	return out, nil
}

func (c *ledgerCommandsImpl) AdminAdjust(ctx context.Context, actor user.Identity, in AdjustInput) (*LedgerResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var out *LedgerResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Locks().LockAccount(ctx, in.UserID); err != nil {
			return dbErr(err)
		}
		now := c.clock.Now()
		acc, _, err := loadAccount(ctx, tx, in.UserID, now)
		if err != nil {
			return err
		}
		entry, err := ledger.Adjust(acc, in.Delta, in.Reason, in.Bypass, now)
		if err != nil {
			return err
		}
		if err := persistEntry(ctx, tx, acc, entry); err != nil {
			return err
		}
		record := audit.NewRecord(actor.UserID, audit.ActionLedgerAdjust, entry.ID().String(), in.Reason, map[string]any{
			"user_id": in.UserID.String(),
			"delta":   in.Delta,
			"bypass":  in.Bypass,
		}, now)
		if err := tx.Audit().Append(ctx, record); err != nil {
			return dbErr(err)
		}
		out = &LedgerResult{Transaction: entry, Balance: acc.Balance(), Changed: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.metrics.LedgerMoved(ledger.KindAdminAdjust, in.Delta)
	slog.Warn("manual ledger adjustment",
		"actor_id", actor.UserID.String(),
		"user_id", in.UserID.String(),
		"delta", in.Delta,
		"reason", in.Reason)
	return out, nil
}

func loadLedgerTx(ctx context.Context, tx shared.Tx, id uuid.UUID) (*ledger.Transaction, error) {
	entry, err := tx.Ledger().FindTransaction(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(errs.ErrLedgerTxNotFound, "transaction %s", id)
		}
		return nil, dbErr(err)
	}
	return entry, nil
}
