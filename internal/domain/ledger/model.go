package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultInstallmentMonths applies when an installment debt names no
// positive month count.
const DefaultInstallmentMonths = 3

type TermKind string

const (
	TermStraight    TermKind = "straight"
	TermInstallment TermKind = "installment"
)

// ParseTerm treats an empty value as straight.
func ParseTerm(value string) (TermKind, error) {
	switch TermKind(strings.ToLower(strings.TrimSpace(value))) {
	case "", TermStraight:
		return TermStraight, nil
	case TermInstallment:
		return TermInstallment, nil
	}
	return "", ErrUnknownTerm
}

// Entry is one debt owed by OwedBy to PaidBy.
type Entry struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	PaidBy      string
	OwedBy      string
	IsPaid      bool
	CreatedAt   time.Time
	PaidAt      *time.Time
	Installment *Installment
}

// Involves reports whether accountID is the payer or the ower.
func (e *Entry) Involves(accountID string) bool {
	return e.PaidBy == accountID || e.OwedBy == accountID
}

type Installment struct {
	GroupID string
	Index   int
	Total   int
	DueDate time.Time
}

type DebtInput struct {
	Description string
	Amount      decimal.Decimal
	PaidBy      string
	OwedBy      string
	Term        TermKind
	Months      int
}

// ParseAmount accepts a decimal string such as "12.50".
func ParseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}
