package account

import "time"

// ViewCache holds rendered views. A view is built from reads that can race
// with a mutation, so callers take a Generation before reading and hand it
// to SetByAccountID; the cache drops the view if the account was invalidated
// in between.
type ViewCache interface {
	GetByAccountID(accountID string) (*View, bool)
	Generation(accountID string) uint64
	SetByAccountID(accountID string, generation uint64, view *View, ttl time.Duration)
	DeleteByAccountID(accountID string)
	Clear()
}

type noopCache struct{}

func (noopCache) GetByAccountID(string) (*View, bool) {
	return nil, false
}

func (noopCache) Generation(string) uint64 { return 0 }

func (noopCache) SetByAccountID(string, uint64, *View, time.Duration) {}

func (noopCache) DeleteByAccountID(string) {}

func (noopCache) Clear() {}
