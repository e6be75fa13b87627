// Package dashboard assembles the read-only summary shown after sign-in.
package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"household-ledger-go/internal/domain/account"
	"household-ledger-go/internal/domain/ledger"
)

type AccountReader interface {
	Profile(ctx context.Context, accountID string) (*account.View, error)
}

type DebtReader interface {
	ListDebts(ctx context.Context, accountID string) ([]ledger.Entry, error)
}

type Summary struct {
	Account *account.View
	Debts   []ledger.Entry
	Balance decimal.Decimal
	// CounterpartyOwes is true when the balance favours the account.
	CounterpartyOwes bool
}

type Service struct {
	accounts AccountReader
	debts    DebtReader
}

func NewService(accounts AccountReader, debts DebtReader) *Service {
	return &Service{accounts: accounts, debts: debts}
}

func (s *Service) Dashboard(ctx context.Context, accountID string) (*Summary, error) {
	var (
		view    *account.View
		entries []ledger.Entry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		view, err = s.accounts.Profile(gctx, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.debts.ListDebts(gctx, accountID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	balance := ledger.ComputeBalance(accountID, entries)
	return &Summary{
		Account:          view,
		Debts:            entries,
		Balance:          balance,
		CounterpartyOwes: balance.IsPositive(),
	}, nil
}
