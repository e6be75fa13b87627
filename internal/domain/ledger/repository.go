package ledger

import (
	"context"
	"time"
)

// Repository is the Ledger Store. Listings are ordered by creation time,
// newest first. A missing entry is ErrEntryNotFound.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	// CreateMany stores all entries or none.
	CreateMany(ctx context.Context, entries []Entry) error
	FindAll(ctx context.Context) ([]Entry, error)
	FindByAccount(ctx context.Context, accountID string) ([]Entry, error)
	FindByID(ctx context.Context, id string) (*Entry, error)
	UpdatePaid(ctx context.Context, id string, isPaid bool, paidAt *time.Time) (*Entry, error)
	Delete(ctx context.Context, id string) error
}
