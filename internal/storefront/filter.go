package storefront

import (
	"sync"

	"github.com/angelmondragon/roxi-storefront/internal/catalog"
)

// FilterBar holds the active style filter over a list of product cards.
type FilterBar struct {
	mu       sync.Mutex
	buttons  []string
	products []catalog.Product
	active   string
}

// NewFilterBar starts with every card visible. buttons are the data-filter
// values of the bar, in order.
func NewFilterBar(buttons []string, products []catalog.Product) *FilterBar {
	return &FilterBar{buttons: buttons, products: products, active: catalog.FilterAll}
}

func (f *FilterBar) Active() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// Apply activates style and returns the visibility of each card.
func (f *FilterBar) Apply(style string) []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = catalog.NormalizeFilter(style)
	visible := make([]bool, len(f.products))
	for i, p := range f.products {
		visible[i] = p.MatchesStyle(f.active)
	}
	return visible
}

// ButtonStates reports which filter buttons render as active.
func (f *FilterBar) ButtonStates() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	states := make([]bool, len(f.buttons))
	for i, b := range f.buttons {
		states[i] = b == f.active
	}
	return states
}

// ActivateCategory applies the category's target. A card without a target
// leaves the filter unchanged and returns nil.
func (f *FilterBar) ActivateCategory(card catalog.CategoryCard) []bool {
	if card.Target == "" {
		return nil
	}
	return f.Apply(card.Target)
}
