//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike accepts a pool or a transaction.
type DBLike = repository.DBTX

func CreateTestResource(t *testing.T, db DBLike, name string, resourceType resource.Type) uuid.UUID {
	t.Helper()

	res, err := resource.NewResource(uuid.New(), name, resourceType, 4, time.Now())
	require.NoError(t, err)
	require.NoError(t, repository.NewResourceRepository(db).Create(context.Background(), res))

	return res.ID()
}

// FundAccount credits amount points to userID as a completed recharge.
func FundAccount(t *testing.T, db DBLike, userID uuid.UUID, amount int64) {
	t.Helper()

	ctx := context.Background()
	repo := repository.NewLedgerRepository(db)
	now := time.Now()

	acc, err := repo.FindAccount(ctx, userID)
	if infra.IsKind(err, infra.KindNotFound) {
		acc, err = ledger.NewAccount(userID, now), nil
	}
	require.NoError(t, err)

	tx, err := ledger.NewRecharge(acc, amount, "fixture-"+uuid.NewString(), ledger.StatusCompleted, now)
	require.NoError(t, err)
	require.NoError(t, repo.SaveAccount(ctx, acc))
	require.NoError(t, repo.CreateTransaction(ctx, tx))
}

// SeedReferenceData stores the default tariff so every test prices against the same tables.
func SeedReferenceData(pool *pgxpool.Pool) error {
	cfg := tariff.DefaultConfig()
	return repository.NewTariffRepository(pool).Save(context.Background(), &cfg)
}

// tables in dependency order, children first
var bookingTables = []string{
	"audit_log",
	"redeem_code_uses",
	"redeem_codes",
	"reservations",
	"full_venue_transactions",
	"ledger_transactions",
	"ledger_accounts",
	"resources",
	"tariff_config",
}

// ResetDB empties every booking table and reseeds the tariff.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(bookingTables, ", ")+" CASCADE"); err != nil {
		return fmt.Errorf("truncate booking tables: %w", err)
	}
	return SeedReferenceData(pool)
}
