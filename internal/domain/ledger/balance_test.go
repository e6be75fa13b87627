package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func entry(payer, ower, amount string, paid bool) Entry {
	return Entry{PaidBy: payer, OwedBy: ower, Amount: decimal.RequireFromString(amount), IsPaid: paid}
}

func TestComputeBalanceEmpty(t *testing.T) {
	assert.True(t, ComputeBalance("a", nil).IsZero())
}

func TestComputeBalanceIsAntisymmetric(t *testing.T) {
	entries := []Entry{entry("a", "b", "42.10", false)}

	assert.Equal(t, "42.1", ComputeBalance("a", entries).String())
	assert.Equal(t, "-42.1", ComputeBalance("b", entries).String())
}

func TestComputeBalanceNetsBothDirections(t *testing.T) {
	entries := []Entry{
		entry("a", "b", "100", false),
		entry("b", "a", "30.50", false),
		entry("a", "b", "999", true),
		entry("c", "d", "15", false),
	}

	assert.True(t, decimal.RequireFromString("69.50").Equal(ComputeBalance("a", entries)))
	assert.True(t, decimal.RequireFromString("-69.50").Equal(ComputeBalance("b", entries)))
	assert.True(t, ComputeBalance("ghost", entries).IsZero())
}

func TestComputeBalanceAllPaid(t *testing.T) {
	entries := []Entry{entry("a", "b", "10", true), entry("b", "a", "5", true)}
	assert.True(t, ComputeBalance("a", entries).IsZero())
}

func TestMarkingPaidRemovesContribution(t *testing.T) {
	entries := []Entry{entry("a", "b", "20", false), entry("a", "b", "7.25", false)}
	beforeA := ComputeBalance("a", entries)
	beforeB := ComputeBalance("b", entries)

	entries[1].IsPaid = true

	assert.True(t, beforeA.Sub(ComputeBalance("a", entries)).Equal(decimal.RequireFromString("7.25")))
	assert.True(t, ComputeBalance("b", entries).Sub(beforeB).Equal(decimal.RequireFromString("7.25")))
}

func TestComputeBalanceStaysExactOverManyEntries(t *testing.T) {
	entries := make([]Entry, 0, 1000)
	for i := 0; i < 1000; i++ {
		entries = append(entries, entry("a", "b", "0.10", false))
	}
	assert.Equal(t, "100", ComputeBalance("a", entries).String())
}
