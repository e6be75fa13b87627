package inmemory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"household-ledger-go/internal/domain/errs"
	ledgerdomain "household-ledger-go/internal/domain/ledger"
)

var (
	errDuplicateEntry = errors.New("duplicate ledger entry id")
	errEntryCheck     = errors.New("ledger entry violates amount or party constraint")
)

// LedgerStore is a process-local Ledger Store. It enforces the same row
// constraints as the ledger_entries table.
type LedgerStore struct {
	mu      sync.RWMutex
	entries map[string]ledgerdomain.Entry
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{entries: make(map[string]ledgerdomain.Entry)}
}

func (s *LedgerStore) Create(ctx context.Context, entry *ledgerdomain.Entry) error {
	return s.CreateMany(ctx, []ledgerdomain.Entry{*entry})
}

func (s *LedgerStore) CreateMany(ctx context.Context, entries []ledgerdomain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, ok := s.entries[entry.ID]; ok {
			return errs.Store("ledger.create", errDuplicateEntry)
		}
		if _, ok := seen[entry.ID]; ok {
			return errs.Store("ledger.create", errDuplicateEntry)
		}
		if !entry.Amount.IsPositive() || entry.PaidBy == entry.OwedBy || entry.IsPaid != (entry.PaidAt != nil) {
			return errs.Store("ledger.create", errEntryCheck)
		}
		seen[entry.ID] = struct{}{}
	}

	for _, entry := range entries {
		s.entries[entry.ID] = copyEntry(entry)
	}
	return nil
}

func (s *LedgerStore) FindAll(ctx context.Context) ([]ledgerdomain.Entry, error) {
	return s.filter(func(ledgerdomain.Entry) bool { return true }), nil
}

func (s *LedgerStore) FindByAccount(ctx context.Context, accountID string) ([]ledgerdomain.Entry, error) {
	return s.filter(func(entry ledgerdomain.Entry) bool { return entry.Involves(accountID) }), nil
}

func (s *LedgerStore) FindByID(ctx context.Context, id string) (*ledgerdomain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, ledgerdomain.ErrEntryNotFound
	}
	clone := copyEntry(entry)
	return &clone, nil
}

func (s *LedgerStore) UpdatePaid(ctx context.Context, id string, isPaid bool, paidAt *time.Time) (*ledgerdomain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, ledgerdomain.ErrEntryNotFound
	}
	if isPaid != (paidAt != nil) {
		return nil, errs.Store("ledger.update_paid", errEntryCheck)
	}

	entry.IsPaid = isPaid
	entry.PaidAt = paidAt
	entry = copyEntry(entry)
	s.entries[id] = entry

	clone := copyEntry(entry)
	return &clone, nil
}

func (s *LedgerStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ledgerdomain.ErrEntryNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *LedgerStore) filter(keep func(ledgerdomain.Entry) bool) []ledgerdomain.Entry {
	s.mu.RLock()
	result := make([]ledgerdomain.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if keep(entry) {
			result = append(result, copyEntry(entry))
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		if a.Installment != nil && b.Installment != nil && a.Installment.Index != b.Installment.Index {
			return a.Installment.Index < b.Installment.Index
		}
		return a.ID < b.ID
	})
	return result
}

func copyEntry(entry ledgerdomain.Entry) ledgerdomain.Entry {
	if entry.PaidAt != nil {
		paidAt := *entry.PaidAt
		entry.PaidAt = &paidAt
	}
	if entry.Installment != nil {
		installment := *entry.Installment
		entry.Installment = &installment
	}
	return entry
}
