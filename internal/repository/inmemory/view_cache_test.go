package inmemory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	accountdomain "household-ledger-go/internal/domain/account"
)

func TestViewCacheRoundTrip(t *testing.T) {
	cache := NewViewCache()
	view := &accountdomain.View{
		ID:              "a",
		FirstName:       "John",
		Partner:         &accountdomain.PartnerView{ID: "b", FirstName: "Jane"},
		PendingRequests: []accountdomain.PendingRequestView{{ID: "r1"}},
	}

	cache.SetByAccountID("a", cache.Generation("a"), view, time.Minute)
	view.Partner.FirstName = "mutated"

	got, ok := cache.GetByAccountID("a")
	require.True(t, ok)
	assert.Equal(t, "Jane", got.Partner.FirstName)
	assert.Len(t, got.PendingRequests, 1)

	got.PendingRequests[0].ID = "changed"
	again, ok := cache.GetByAccountID("a")
	require.True(t, ok)
	assert.Equal(t, "r1", again.PendingRequests[0].ID)
}

func TestViewCacheExpiryAndInvalidation(t *testing.T) {
	cache := NewViewCache()

	cache.SetByAccountID("a", cache.Generation("a"), &accountdomain.View{ID: "a"}, time.Nanosecond)
	time.Sleep(time.Millisecond)
	_, ok := cache.GetByAccountID("a")
	assert.False(t, ok)

	cache.SetByAccountID("a", cache.Generation("a"), &accountdomain.View{ID: "a"}, 0)
	_, ok = cache.GetByAccountID("a")
	assert.False(t, ok)

	cache.SetByAccountID("a", cache.Generation("a"), &accountdomain.View{ID: "a"}, time.Minute)
	cache.SetByAccountID("b", cache.Generation("b"), &accountdomain.View{ID: "b"}, time.Minute)
	cache.DeleteByAccountID("a")
	_, ok = cache.GetByAccountID("a")
	assert.False(t, ok)
	_, ok = cache.GetByAccountID("b")
	assert.True(t, ok)

	cache.Clear()
	_, ok = cache.GetByAccountID("b")
	assert.False(t, ok)
}

func TestViewCacheDropsViewsBuiltBeforeInvalidation(t *testing.T) {
	cache := NewViewCache()

	generation := cache.Generation("jane")
	cache.DeleteByAccountID("jane")
	cache.SetByAccountID("jane", generation, &accountdomain.View{ID: "jane"}, time.Minute)
	_, ok := cache.GetByAccountID("jane")
	assert.False(t, ok)

	other := cache.Generation("john")
	cache.DeleteByAccountID("jane")
	cache.SetByAccountID("john", other, &accountdomain.View{ID: "john"}, time.Minute)
	_, ok = cache.GetByAccountID("john")
	assert.True(t, ok, "invalidating one account must not block another")

	generation = cache.Generation("jane")
	cache.Clear()
	cache.SetByAccountID("jane", generation, &accountdomain.View{ID: "jane"}, time.Minute)
	_, ok = cache.GetByAccountID("jane")
	assert.False(t, ok)

	cache.SetByAccountID("jane", cache.Generation("jane"), &accountdomain.View{ID: "jane"}, time.Minute)
	_, ok = cache.GetByAccountID("jane")
	assert.True(t, ok)
}
