package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	repo          Repository
	defaultMonths int
	now           func() time.Time
}

// NewService uses defaultMonths for installment debts submitted without a
// month count; a non-positive value falls back to DefaultInstallmentMonths.
func NewService(repo Repository, defaultMonths int) *Service {
	if defaultMonths <= 0 {
		defaultMonths = DefaultInstallmentMonths
	}
	return &Service{
		repo:          repo,
		defaultMonths: defaultMonths,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// AddDebt stores the entries ExpandDebt produces. Installment batches are
// written atomically.
func (s *Service) AddDebt(ctx context.Context, input DebtInput) ([]Entry, error) {
	if input.Term == TermInstallment && input.Months <= 0 {
		input.Months = s.defaultMonths
	}

	entries, err := ExpandDebt(input, s.now())
	if err != nil {
		return nil, err
	}

	if len(entries) == 1 {
		if err := s.repo.Create(ctx, &entries[0]); err != nil {
			return nil, err
		}
		return entries, nil
	}

	if err := s.repo.CreateMany(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ToggleDebt sets the paid flag; the paid timestamp is present iff paid.
func (s *Service) ToggleDebt(ctx context.Context, entryID string, isPaid bool) (*Entry, error) {
	var paidAt *time.Time
	if isPaid {
		now := s.now()
		paidAt = &now
	}
	return s.repo.UpdatePaid(ctx, entryID, isPaid, paidAt)
}

func (s *Service) DeleteDebt(ctx context.Context, entryID string) error {
	return s.repo.Delete(ctx, entryID)
}

// ListDebts returns the entries involving accountID, or every entry when
// accountID is empty.
func (s *Service) ListDebts(ctx context.Context, accountID string) ([]Entry, error) {
	var (
		entries []Entry
		err     error
	)
	if accountID == "" {
		entries, err = s.repo.FindAll(ctx)
	} else {
		entries, err = s.repo.FindByAccount(ctx, accountID)
	}
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (s *Service) Balance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	entries, err := s.repo.FindByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return ComputeBalance(accountID, entries), nil
}

// EnsureParty loads the entry and reports ErrEntryNotFound unless accountID
// is its payer or ower.
func (s *Service) EnsureParty(ctx context.Context, entryID, accountID string) (*Entry, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Involves(accountID) {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}
