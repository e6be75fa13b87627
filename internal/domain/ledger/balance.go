package ledger

import "github.com/shopspring/decimal"

// ComputeBalance nets the unpaid entries touching accountID. Positive means
// the counterparty owes the account, negative means the account owes.
// Entries that do not involve the account contribute nothing.
func ComputeBalance(accountID string, entries []Entry) decimal.Decimal {
	balance := decimal.Zero
	for _, entry := range entries {
		if entry.IsPaid {
			continue
		}
		if entry.PaidBy == accountID {
			balance = balance.Add(entry.Amount)
		}
		if entry.OwedBy == accountID {
			balance = balance.Sub(entry.Amount)
		}
	}
	return balance
}
