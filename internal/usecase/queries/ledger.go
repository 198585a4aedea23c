package queries

import (
	"context"
	"time"

	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type BalanceView struct {
	UserID  uuid.UUID
	Balance int64
	Version int64
}

type LedgerPage struct {
	Items      []*ledger.Transaction
	NextCursor string
}

type LedgerQueries interface {
	Balance(ctx context.Context, actor user.Identity, userID uuid.UUID) (*BalanceView, error)
	History(ctx context.Context, actor user.Identity, userID uuid.UUID, after string, limit int) (*LedgerPage, error)
}

type ledgerQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewLedgerQueries(uow shared.UnitOfWork) LedgerQueries {
	return &ledgerQueriesImpl{uow: uow}
}

// Balance of an account that never transacted is zero.
func (q *ledgerQueriesImpl) Balance(ctx context.Context, actor user.Identity, userID uuid.UUID) (*BalanceView, error) {
	if !canRead(actor, userID) {
		return nil, errs.Wrap(errs.ErrForbidden, "cannot read another user's balance")
	}
	out := &BalanceView{UserID: userID}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		acc, err := tx.Ledger().FindAccount(ctx, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		out.Balance, out.Version = acc.Balance(), acc.Version()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (q *ledgerQueriesImpl) History(ctx context.Context, actor user.Identity, userID uuid.UUID, after string, limit int) (*LedgerPage, error) {
	if !canRead(actor, userID) {
		return nil, errs.Wrap(errs.ErrForbidden, "cannot read another user's history")
	}
	page, err := PageFrom(after, limit)
	if err != nil {
		return nil, err
	}
	var out *LedgerPage
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		items, err := tx.Ledger().ListTransactions(ctx, userID, page)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		items, next := trimPage(items, page, func(t *ledger.Transaction) (time.Time, uuid.UUID) {
			return t.CreatedAt(), t.ID()
		})
		out = &LedgerPage{Items: items, NextCursor: next}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
