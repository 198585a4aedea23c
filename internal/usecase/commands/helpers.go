package commands

import (
	"context"
	"log/slog"
	"time"

	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

func dbErr(err error) error {
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func loadAccount(ctx context.Context, tx shared.Tx, userID uuid.UUID, now time.Time) (*ledger.Account, bool, error) {
	acc, err := tx.Ledger().FindAccount(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ledger.NewAccount(userID, now), false, nil
		}
		return nil, false, dbErr(err)
	}
	return acc, true, nil
}

// findByReference returns the earlier transaction for a retried credit or debit.
func findByReference(ctx context.Context, tx shared.Tx, userID uuid.UUID, kind ledger.Kind, reference string) (*ledger.Transaction, error) {
	if reference == "" {
		return nil, nil
	}
	existing, err := tx.Ledger().FindByReference(ctx, userID, kind, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, dbErr(err)
	}
	return existing, nil
}

// debitAccount locks the account and records a debit. The caller holds any resource and
// redeem code locks already, so the account lock is always taken last.
func debitAccount(
	ctx context.Context,
	tx shared.Tx,
	userID uuid.UUID,
	amount int64,
	kind ledger.Kind,
	reference, note string,
	bypass bool,
	now time.Time,
) (*ledger.Transaction, bool, error) {
	if err := tx.Locks().LockAccount(ctx, userID); err != nil {
		return nil, false, dbErr(err)
	}
	if existing, err := findByReference(ctx, tx, userID, kind, reference); err != nil || existing != nil {
		return existing, existing != nil, err
	}

	acc, _, err := loadAccount(ctx, tx, userID, now)
	if err != nil {
		return nil, false, err
	}
	entry, err := ledger.Debit(acc, amount, kind, reference, note, bypass, now)
	if err != nil {
		return nil, false, err
	}
	if err := persistEntry(ctx, tx, acc, entry); err != nil {
		return nil, false, err
	}
	return entry, false, nil
}

func creditAccount(
	ctx context.Context,
	tx shared.Tx,
	userID uuid.UUID,
	amount int64,
	kind ledger.Kind,
	reference, note string,
	now time.Time,
) (*ledger.Transaction, bool, error) {
	if err := tx.Locks().LockAccount(ctx, userID); err != nil {
		return nil, false, dbErr(err)
	}
	if existing, err := findByReference(ctx, tx, userID, kind, reference); err != nil || existing != nil {
		return existing, existing != nil, err
	}

	acc, _, err := loadAccount(ctx, tx, userID, now)
	if err != nil {
		return nil, false, err
	}
	entry, err := ledger.Credit(acc, amount, kind, reference, note, now)
	if err != nil {
		return nil, false, err
	}
	if err := persistEntry(ctx, tx, acc, entry); err != nil {
		return nil, false, err
	}
	return entry, false, nil
}

func persistEntry(ctx context.Context, tx shared.Tx, acc *ledger.Account, entry *ledger.Transaction) error {
	if err := tx.Ledger().SaveAccount(ctx, acc); err != nil {
		return dbErr(err)
	}
	if err := tx.Ledger().CreateTransaction(ctx, entry); err != nil {
		return dbErr(err)
	}
	return nil
}

// lockAndLoadCode takes the redeem code lock before reading usage, so the usage limit check
// and the use that follows are atomic.
func lockAndLoadCode(ctx context.Context, tx shared.Tx, code string, userID uuid.UUID) (*redeem.Code, int, error) {
	if code == "" {
		return nil, 0, nil
	}
	normalized, err := redeem.NormalizeCode(code)
	if err != nil {
		return nil, 0, errs.Mark(err, errs.ErrRedeemCodeInvalid)
	}
	if err := tx.Locks().LockRedeemCode(ctx, normalized); err != nil {
		return nil, 0, dbErr(err)
	}
	return shared.LoadRedeemCode(ctx, tx, normalized, userID)
}

func consumeCode(ctx context.Context, tx shared.Tx, code *redeem.Code, userID, reference uuid.UUID, now time.Time) error {
	if code == nil {
		return nil
	}
	code.RecordUse(now)
	if err := tx.RedeemCodes().Update(ctx, code); err != nil {
		return dbErr(err)
	}
	if err := tx.RedeemCodes().CreateUse(ctx, redeem.NewUse(code.Code(), userID, reference, now)); err != nil {
		return dbErr(err)
	}
	return nil
}

// releaseCode gives back the use tied to reference. The caller must not hold the account lock.
func releaseCode(ctx context.Context, tx shared.Tx, code string, reference uuid.UUID, now time.Time) error {
	if err := tx.Locks().LockRedeemCode(ctx, code); err != nil {
		return dbErr(err)
	}
	released, err := tx.RedeemCodes().ReleaseUse(ctx, code, reference)
	if err != nil {
		return dbErr(err)
	}
	if !released {
		return nil
	}
	c, err := tx.RedeemCodes().FindByCode(ctx, code)
	if err != nil {
		return dbErr(err)
	}
	c.ReleaseUse(now)
	if err := tx.RedeemCodes().Update(ctx, c); err != nil {
		return dbErr(err)
	}
	return nil
}

func loadReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	r, err := tx.Reservations().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(errs.ErrReservationNotFound, "reservation %s", id)
		}
		return nil, dbErr(err)
	}
	return r, nil
}

func publish(ctx context.Context, publisher shared.EventPublisher, ev shared.Event) {
	if err := publisher.Publish(ctx, ev); err != nil {
		slog.Warn("failed to publish booking event",
			"type", string(ev.Type),
			"aggregate_id", ev.AggregateID.String(),
			"error", err.Error())
	}
}

// rejectReason labels a failed commit for metrics.
func rejectReason(err error) string {
	switch {
	case errs.Is(err, errs.ErrPartialFailure):
		return "partial_failure"
	case errs.Is(err, errs.ErrSlotTaken):
		return "slot_taken"
	case errs.Is(err, errs.ErrInsufficientBalance):
		return "insufficient_balance"
	case errs.Is(err, errs.ErrPricingChanged):
		return "pricing_changed"
	case errs.IsAny(err, errs.ErrRedeemCodeInvalid, errs.ErrRedeemCodeExhausted, errs.ErrRedeemCodeScopeMismatch):
		return "redeem_code"
	case errs.Is(err, errs.ErrInvalidInterval):
		return "invalid_interval"
	case errs.Is(err, errs.ErrResourceInactive):
		return "resource_inactive"
	case errs.Is(err, errs.ErrForbidden):
		return "forbidden"
	default:
		return "other"
	}
}

// resolveOwner returns who a booking is made for. Only admins may book for someone else.
func resolveOwner(actorID uuid.UUID, isAdmin bool, onBehalfOf *uuid.UUID) (uuid.UUID, error) {
	if onBehalfOf == nil || *onBehalfOf == actorID {
		return actorID, nil
	}
	if !isAdmin {
		return uuid.Nil, errs.Wrap(errs.ErrForbidden, "only admins may book for another user")
	}
	return *onBehalfOf, nil
}
