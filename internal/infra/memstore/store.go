package memstore

import (
	"context"
	"sync"

	"court-booking-engine/internal/domain/audit"
	"court-booking-engine/internal/domain/fullvenue"
	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// state is either the committed data or one transaction's staged changes.
type state struct {
	resources    map[uuid.UUID]*resource.Resource
	reservations map[uuid.UUID]*reservation.Reservation
	fullVenues   map[uuid.UUID]*fullvenue.Transaction
	accounts     map[uuid.UUID]*ledger.Account
	ledgerTxs    map[uuid.UUID]*ledger.Transaction
	codes        map[string]*redeem.Code
	uses         map[uuid.UUID]redeem.Use
	tariff       *tariff.Config
	audit        []audit.Record
}

func newState() *state {
	return &state{
		resources:    make(map[uuid.UUID]*resource.Resource),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		fullVenues:   make(map[uuid.UUID]*fullvenue.Transaction),
		accounts:     make(map[uuid.UUID]*ledger.Account),
		ledgerTxs:    make(map[uuid.UUID]*ledger.Transaction),
		codes:        make(map[string]*redeem.Code),
		uses:         make(map[uuid.UUID]redeem.Use),
	}
}

// apply merges staged changes into s.
func (s *state) apply(staged *state) {
	for id, v := range staged.resources {
		s.resources[id] = v
	}
	for id, v := range staged.reservations {
		s.reservations[id] = v
	}
	for id, v := range staged.fullVenues {
		s.fullVenues[id] = v
	}
	for id, v := range staged.accounts {
		s.accounts[id] = v
	}
	for id, v := range staged.ledgerTxs {
		s.ledgerTxs[id] = v
	}
	for code, v := range staged.codes {
		s.codes[code] = v
	}
	for id, v := range staged.uses {
		s.uses[id] = v
	}
	if staged.tariff != nil {
		s.tariff = staged.tariff
	}
	s.audit = append(s.audit, staged.audit...)
}

// Store keeps everything in process memory with the same guarantees as the Postgres store:
// writes are staged per unit of work and applied atomically on commit, and keyed locks are
// held until the unit of work ends.
type Store struct {
	mu        sync.RWMutex
	committed *state
	locks     *keyedLocks
}

func New() *Store {
	return &Store{
		committed: newState(),
		locks:     newKeyedLocks(),
	}
}

func NewUoW(s *Store) shared.UnitOfWork {
	return s
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := newMemTx(s, false)
	defer tx.releaseLocks()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	// A cancelled caller gets a rollback, never a partial commit.
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed.apply(tx.staged)
	s.mu.Unlock()
	return nil
}

// WithinReadOnly holds the read lock for the whole callback, so every read sees one snapshot.
func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(ctx, newMemTx(s, true))
}

// AuditLog returns a copy of every committed audit record.
func (s *Store) AuditLog() []audit.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]audit.Record, len(s.committed.audit))
	copy(out, s.committed.audit)
	return out
}

// keyedLocks hands out one mutex per key. A slot lives while someone holds or waits for it.
type keyedLocks struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{slots: make(map[string]*lockSlot)}
}

func (k *keyedLocks) acquire(ctx context.Context, key string) error {
	k.mu.Lock()
	slot, ok := k.slots[key]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		k.slots[key] = slot
	}
	slot.refs++
	k.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		k.unref(key, slot)
		return ctx.Err()
	}
}

func (k *keyedLocks) release(key string) {
	k.mu.Lock()
	slot := k.slots[key]
	k.mu.Unlock()
	<-slot.ch
	k.unref(key, slot)
}

func (k *keyedLocks) unref(key string, slot *lockSlot) {
	k.mu.Lock()
	defer k.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(k.slots, key)
	}
}

// size reports how many keys currently have a slot.
func (k *keyedLocks) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.slots)
}
