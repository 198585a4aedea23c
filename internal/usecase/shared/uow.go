package shared

import (
	"context"
	"time"

	"court-booking-engine/internal/domain/audit"
	"court-booking-engine/internal/domain/fullvenue"
	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: read-write transaction with retry on serialization failures.
	// Locks taken through tx.Locks() are released when fn returns.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: one consistent snapshot for multi-table reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Locks() LockManager
	Resources() ResourceRepository
	Reservations() ReservationRepository
	FullVenues() FullVenueRepository
	Ledger() LedgerRepository
	RedeemCodes() RedeemCodeRepository
	Tariff() TariffRepository
	Audit() AuditRepository
}

// LockManager serializes writers. Callers take resource-day locks first (sorted by resource id),
// then the redeem code, then the account. Admin edits take LockTariff or LockResource and
// nothing else.
type LockManager interface {
	LockResourceDay(ctx context.Context, resourceID uuid.UUID, date time.Time) error
	LockRedeemCode(ctx context.Context, code string) error
	LockAccount(ctx context.Context, userID uuid.UUID) error
	LockTariff(ctx context.Context) error
	LockResource(ctx context.Context, resourceID uuid.UUID) error
}

// Page is a keyset over (createdAt, id), newest first.
type Page struct {
	AfterCreatedAt time.Time
	AfterID        uuid.UUID
	Limit          int
}

func (p Page) HasCursor() bool {
	return p.AfterID != uuid.Nil
}

type ResourceRepository interface {
	Create(ctx context.Context, r *resource.Resource) error
	Update(ctx context.Context, r *resource.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	List(ctx context.Context) ([]*resource.Resource, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	Update(ctx context.Context, r *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByRequestKey(ctx context.Context, userID uuid.UUID, key string) (*reservation.Reservation, error)
	// ListActiveByResourceDate returns pending and confirmed reservations, ordered by start.
	ListActiveByResourceDate(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*reservation.Reservation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*reservation.Reservation, error)
	ListByResourceDate(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error)
}

type FullVenueRepository interface {
	Create(ctx context.Context, t *fullvenue.Transaction) error
	Update(ctx context.Context, t *fullvenue.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*fullvenue.Transaction, error)
	FindByRequestKey(ctx context.Context, userID uuid.UUID, key string) (*fullvenue.Transaction, error)
}

type LedgerRepository interface {
	FindAccount(ctx context.Context, userID uuid.UUID) (*ledger.Account, error)
	// SaveAccount inserts or updates the account row.
	SaveAccount(ctx context.Context, acc *ledger.Account) error
	CreateTransaction(ctx context.Context, t *ledger.Transaction) error
	UpdateTransaction(ctx context.Context, t *ledger.Transaction) error
	FindTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	FindByReference(ctx context.Context, accountID uuid.UUID, kind ledger.Kind, reference string) (*ledger.Transaction, error)
	ListTransactions(ctx context.Context, accountID uuid.UUID, page Page) ([]*ledger.Transaction, error)
}

type RedeemCodeRepository interface {
	Create(ctx context.Context, c *redeem.Code) error
	Update(ctx context.Context, c *redeem.Code) error
	FindByCode(ctx context.Context, code string) (*redeem.Code, error)
	List(ctx context.Context) ([]*redeem.Code, error)
	CreateUse(ctx context.Context, u redeem.Use) error
	// ReleaseUse marks the use tied to reference as released and reports whether one existed.
	ReleaseUse(ctx context.Context, code string, reference uuid.UUID) (bool, error)
	// CountUses counts unreleased uses of code by userID.
	CountUses(ctx context.Context, code string, userID uuid.UUID) (int, error)
}

type TariffRepository interface {
	// Load returns the stored configuration, or the default when none is stored.
	Load(ctx context.Context) (*tariff.Config, error)
	Save(ctx context.Context, cfg *tariff.Config) error
}

type AuditRepository interface {
	Append(ctx context.Context, r audit.Record) error
}
