package repository

import (
	"context"
	"errors"

	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
	pgErrReadOnlyTransaction = "25006"
)

// classify maps driver errors onto repository error kinds.
func classify(msg string, err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(msg, err, infra.KindNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		case pgErrReadOnlyTransaction:
			return infra.WrapRepoErr(msg, err, infra.KindReadOnly)
		}
	}
	return infra.WrapRepoErr(msg, err)
}

// expectOne turns an UPDATE that matched nothing into a not found error.
func expectOne(tag pgconn.CommandTag, msg string) error {
	if tag.RowsAffected() == 0 {
		return infra.NotFound(msg)
	}
	return nil
}

// collect scans every row with scan and closes rows.
func collect[T any](rows pgx.Rows, scan func(pgx.Rows) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
