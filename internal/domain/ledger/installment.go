package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxInstallmentMonths = 120

// maxAmount is the first value a NUMERIC(14,2) column cannot hold.
var maxAmount = decimal.New(1, 12)

// ExpandDebt turns one logical debt into the entries to store. A straight
// debt yields a single entry. An installment debt yields Months entries
// sharing a group id, each worth Amount/Months rounded half-up to cents; the
// remainder is not redistributed, so the installments can sum to slightly
// less or more than Amount (100/3 gives 3 x 33.33 = 99.99, 200/3 gives
// 3 x 66.67 = 200.01). Installment i is due i-1 calendar months after now.
//
// Amounts must be positive, have at most two decimal places and stay below
// 10^12. Payer and ower must be distinct account ids.
func ExpandDebt(input DebtInput, now time.Time) ([]Entry, error) {
	description := strings.TrimSpace(input.Description)
	payer := strings.TrimSpace(input.PaidBy)
	ower := strings.TrimSpace(input.OwedBy)

	if description == "" {
		return nil, ErrMissingDescription
	}
	if !validAmount(input.Amount) {
		return nil, ErrInvalidAmount
	}
	if payer == "" || ower == "" {
		return nil, ErrMissingParty
	}
	if !validAccountID(payer) || !validAccountID(ower) {
		return nil, ErrMalformedParty
	}
	if payer == ower {
		return nil, ErrSameParty
	}

	switch input.Term {
	case "", TermStraight:
		return []Entry{{
			ID:          uuid.NewString(),
			Description: description,
			Amount:      input.Amount,
			PaidBy:      payer,
			OwedBy:      ower,
			CreatedAt:   now,
		}}, nil
	case TermInstallment:
	default:
		return nil, ErrUnknownTerm
	}

	months := input.Months
	if months <= 0 {
		months = DefaultInstallmentMonths
	}
	if months > maxInstallmentMonths {
		return nil, ErrTooManyMonths
	}

	perMonth := input.Amount.DivRound(decimal.NewFromInt(int64(months)), 2)
	if !perMonth.IsPositive() {
		return nil, ErrInvalidAmount
	}

	groupID := uuid.NewString()
	entries := make([]Entry, 0, months)
	for i := 1; i <= months; i++ {
		entries = append(entries, Entry{
			ID:          uuid.NewString(),
			Description: fmt.Sprintf("%s (%d/%d)", description, i, months),
			Amount:      perMonth,
			PaidBy:      payer,
			OwedBy:      ower,
			CreatedAt:   now,
			Installment: &Installment{
				GroupID: groupID,
				Index:   i,
				Total:   months,
				DueDate: now.AddDate(0, i-1, 0),
			},
		})
	}

	return entries, nil
}

func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() &&
		amount.Equal(amount.Round(2)) &&
		amount.LessThan(maxAmount)
}

func validAccountID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
