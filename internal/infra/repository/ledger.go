package repository

import (
	"context"
	"time"

	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const ledgerTxColumns = `id, account_id, amount, kind, reference, status, credit_applied, debit_applied, note, created_at, updated_at`

type LedgerRepository struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) FindAccount(ctx context.Context, userID uuid.UUID) (*ledger.Account, error) {
	var (
		balance, version     int64
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT balance, version, created_at, updated_at
		FROM ledger_accounts
		WHERE user_id = $1`,
		userID,
	).Scan(&balance, &version, &createdAt, &updatedAt)
	if err != nil {
		return nil, classify("failed to find ledger account", err)
	}
	return ledger.ReconstructAccount(userID, balance, version, createdAt, updatedAt), nil
}

func (r *LedgerRepository) SaveAccount(ctx context.Context, acc *ledger.Account) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO ledger_accounts (user_id, balance, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = EXCLUDED.balance, version = EXCLUDED.version, updated_at = EXCLUDED.updated_at`,
		acc.UserID(), acc.Balance(), acc.Version(), acc.CreatedAt(), acc.UpdatedAt(),
	)
	if err != nil {
		return classify("failed to save ledger account", err)
	}
	return nil
}

func (r *LedgerRepository) CreateTransaction(ctx context.Context, t *ledger.Transaction) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO ledger_transactions (`+ledgerTxColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID(), t.AccountID(), t.Amount(), string(t.Kind()), t.Reference(), string(t.Status()),
		t.CreditApplied(), t.DebitApplied(), t.Note(), t.CreatedAt(), t.UpdatedAt(),
	)
	if err != nil {
		return classify("failed to create ledger transaction", err)
	}
	return nil
}

func (r *LedgerRepository) UpdateTransaction(ctx context.Context, t *ledger.Transaction) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE ledger_transactions
		SET status = $2, credit_applied = $3, debit_applied = $4, note = $5, updated_at = $6
		WHERE id = $1`,
		t.ID(), string(t.Status()), t.CreditApplied(), t.DebitApplied(), t.Note(), t.UpdatedAt(),
	)
	if err != nil {
		return classify("failed to update ledger transaction", err)
	}
	return expectOne(tag, "ledger transaction not found")
}

func (r *LedgerRepository) FindTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	row := r.db.QueryRow(ctx, `SELECT `+ledgerTxColumns+` FROM ledger_transactions WHERE id = $1`, id)
	t, err := scanLedgerTx(row)
	if err != nil {
		return nil, classify("failed to find ledger transaction", err)
	}
	return t, nil
}

func (r *LedgerRepository) FindByReference(ctx context.Context, accountID uuid.UUID, kind ledger.Kind, reference string) (*ledger.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+ledgerTxColumns+`
		FROM ledger_transactions
		WHERE account_id = $1 AND kind = $2 AND reference = $3`,
		accountID, string(kind), reference,
	)
	t, err := scanLedgerTx(row)
	if err != nil {
		return nil, classify("failed to find ledger transaction by reference", err)
	}
	return t, nil
}

func (r *LedgerRepository) ListTransactions(ctx context.Context, accountID uuid.UUID, page shared.Page) ([]*ledger.Transaction, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if page.HasCursor() {
		rows, err = r.db.Query(ctx, `
			SELECT `+ledgerTxColumns+`
			FROM ledger_transactions
			WHERE account_id = $1 AND (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC
			LIMIT $4`,
			accountID, page.AfterCreatedAt, page.AfterID, page.Limit)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT `+ledgerTxColumns+`
			FROM ledger_transactions
			WHERE account_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2`,
			accountID, page.Limit)
	}
	if err != nil {
		return nil, classify("failed to list ledger transactions", err)
	}
	out, err := collect(rows, func(rows pgx.Rows) (*ledger.Transaction, error) { return scanLedgerTx(rows) })
	if err != nil {
		return nil, classify("failed to scan ledger transactions", err)
	}
	return out, nil
}

func scanLedgerTx(row pgx.Row) (*ledger.Transaction, error) {
	var (
		id, accountID               uuid.UUID
		amount                      int64
		kind, reference, status     string
		creditApplied, debitApplied bool
		note                        string
		createdAt, updatedAt        time.Time
	)
	if err := row.Scan(&id, &accountID, &amount, &kind, &reference, &status,
		&creditApplied, &debitApplied, &note, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return ledger.ReconstructTransaction(
		id, accountID, amount, ledger.Kind(kind), reference, ledger.Status(status),
		creditApplied, debitApplied, note, createdAt, updatedAt,
	), nil
}
