package cart

import "context"

// Store persists the ordered cart list under a single key.
//
// Load never fails: a missing key, malformed content or an unreachable
// backend all read as an empty cart, and implementations log the cause.
// Corrupt local state must never block a shopper from adding items.
type Store interface {
	Load(ctx context.Context) []Item
	Save(ctx context.Context, items []Item) error
	Clear(ctx context.Context) error
}

// StoreFactory hands out the Store bound to a storage key.
type StoreFactory interface {
	ForKey(key string) Store
	Backend() string
}

// Badge displays the cart quantity.
type Badge interface {
	SetCount(ctx context.Context, n int)
}

// CountBadge keeps the last count pushed to it.
type CountBadge struct {
	count int
	set   bool
}

func (b *CountBadge) SetCount(_ context.Context, n int) {
	b.count = n
	b.set = true
}

// Count returns the last rendered count and whether one was rendered.
func (b *CountBadge) Count() (int, bool) {
	return b.count, b.set
}

type noopBadge struct{}

func (noopBadge) SetCount(context.Context, int) {}
