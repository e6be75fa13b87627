package inmemory

import (
	"sync"
	"time"

	accountdomain "household-ledger-go/internal/domain/account"
)

// ViewCache keeps rendered account views per account id until their TTL
// lapses. Values are copied on the way in and out. Every invalidation ticks a
// clock; a set whose generation predates the account's last invalidation is
// dropped.
type ViewCache struct {
	mu          sync.RWMutex
	items       map[string]viewItem
	clock       uint64
	invalidated map[string]uint64
	clearedAt   uint64
}

type viewItem struct {
	value     accountdomain.View
	expiresAt time.Time
}

func NewViewCache() *ViewCache {
	return &ViewCache{
		items:       make(map[string]viewItem),
		invalidated: make(map[string]uint64),
	}
}

func (c *ViewCache) GetByAccountID(accountID string) (*accountdomain.View, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[accountID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[accountID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, accountID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneView(&item.value), true
}

func (c *ViewCache) Generation(string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clock
}

func (c *ViewCache) SetByAccountID(accountID string, generation uint64, view *accountdomain.View, ttl time.Duration) {
	if view == nil || ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clearedAt > generation || c.invalidated[accountID] > generation {
		return
	}
	c.items[accountID] = viewItem{
		value:     *cloneView(view),
		expiresAt: time.Now().Add(ttl),
	}
}

func (c *ViewCache) DeleteByAccountID(accountID string) {
	c.mu.Lock()
	c.clock++
	c.invalidated[accountID] = c.clock
	delete(c.items, accountID)
	c.mu.Unlock()
}

func (c *ViewCache) Clear() {
	c.mu.Lock()
	c.clock++
	c.clearedAt = c.clock
	c.invalidated = make(map[string]uint64)
	c.items = make(map[string]viewItem)
	c.mu.Unlock()
}

func cloneView(view *accountdomain.View) *accountdomain.View {
	clone := *view
	if view.PartnerID != nil {
		partnerID := *view.PartnerID
		clone.PartnerID = &partnerID
	}
	if view.Partner != nil {
		partner := *view.Partner
		clone.Partner = &partner
	}
	clone.PendingRequests = append([]accountdomain.PendingRequestView(nil), view.PendingRequests...)
	if clone.PendingRequests == nil {
		clone.PendingRequests = []accountdomain.PendingRequestView{}
	}
	return &clone
}
