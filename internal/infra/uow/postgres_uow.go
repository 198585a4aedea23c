package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"court-booking-engine/internal/infra/repository"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// NewPostgresUoW: loc is the venue time zone stored slot dates are read back in.
func NewPostgresUoW(pool *pgxpool.Pool, loc *time.Location) shared.UnitOfWork {
	return &PostgresUoW{
		pool: pool,
		loc:  loc,
	}
}

// ReadCommitted is enough: writers serialize on advisory locks taken through tx.Locks().
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = u.run(ctx, pgxTx, fn)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

// run releases the connection before re-raising a panic from fn.
func (u *PostgresUoW) run(ctx context.Context, pgxTx pgx.Tx, fn func(ctx context.Context, tx shared.Tx) error) error {
	defer func() {
		if r := recover(); r != nil {
			_ = pgxTx.Rollback(context.WithoutCancel(ctx))
			panic(r)
		}
	}()
	return fn(ctx, newPgTx(pgxTx, u.loc, false))
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, newPgTx(pgxTx, u.loc, true)); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx     repository.DBTX
	loc      *time.Location
	readOnly bool

	// Lazy-initialized repositories
	locks        shared.LockManager
	resources    shared.ResourceRepository
	reservations shared.ReservationRepository
	fullVenues   shared.FullVenueRepository
	ledger       shared.LedgerRepository
	redeemCodes  shared.RedeemCodeRepository
	tariff       shared.TariffRepository
	audit        shared.AuditRepository
}

func newPgTx(dbtx repository.DBTX, loc *time.Location, readOnly bool) *pgTx {
	return &pgTx{dbtx: dbtx, loc: loc, readOnly: readOnly}
}

func (t *pgTx) Locks() shared.LockManager {
	if t.locks == nil {
		t.locks = repository.NewAdvisoryLocks(t.dbtx, t.readOnly)
	}
	return t.locks
}

func (t *pgTx) Resources() shared.ResourceRepository {
	if t.resources == nil {
		t.resources = repository.NewResourceRepository(t.dbtx)
	}
	return t.resources
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservations == nil {
		t.reservations = repository.NewReservationRepository(t.dbtx, t.loc)
	}
	return t.reservations
}

func (t *pgTx) FullVenues() shared.FullVenueRepository {
	if t.fullVenues == nil {
		t.fullVenues = repository.NewFullVenueRepository(t.dbtx, t.loc)
	}
	return t.fullVenues
}

func (t *pgTx) Ledger() shared.LedgerRepository {
	if t.ledger == nil {
		t.ledger = repository.NewLedgerRepository(t.dbtx)
	}
	return t.ledger
}

func (t *pgTx) RedeemCodes() shared.RedeemCodeRepository {
	if t.redeemCodes == nil {
		t.redeemCodes = repository.NewRedeemCodeRepository(t.dbtx)
	}
	return t.redeemCodes
}

func (t *pgTx) Tariff() shared.TariffRepository {
	if t.tariff == nil {
		t.tariff = repository.NewTariffRepository(t.dbtx)
	}
	return t.tariff
}

func (t *pgTx) Audit() shared.AuditRepository {
	if t.audit == nil {
		t.audit = repository.NewAuditRepository(t.dbtx)
	}
	return t.audit
}
